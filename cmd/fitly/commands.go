package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/raushankrgupta/fitly-wardrobe/models"
	"github.com/raushankrgupta/fitly-wardrobe/scrapers"
	"github.com/raushankrgupta/fitly-wardrobe/utils"
	"github.com/raushankrgupta/fitly-wardrobe/views"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("FITLY_PASSWORD"), "account password (or FITLY_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Login(ctx, *email, *password); err != nil {
		return err
	}
	a.printf("%s\n", a.auth.Message())
	return nil
}

func runSignup(ctx context.Context, a *app, args []string) error {
	fs := newFlags("signup")
	var form views.SignupForm
	fs.StringVar(&form.FirstName, "first", "", "first name")
	fs.StringVar(&form.LastName, "last", "", "last name")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "repeat the password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.auth.Signup(ctx, form); err != nil {
		return err
	}
	a.printf("%s\n", a.auth.Message())
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	a.session.Logout(ctx)
	a.printf("Signed out.\n")
	return nil
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		a.printf("Not signed in.\n")
		return nil
	}
	a.printf("[%s] %s <%s>\n", utils.Initials(user.FirstName, user.LastName), utils.FullName(user.FirstName, user.LastName), user.Email)
	return nil
}

func printPost(a *app, p models.Post, now time.Time) {
	liked, saved := " ", " "
	if p.IsLiked {
		liked = "*"
	}
	if p.IsSaved {
		saved = "+"
	}
	a.printf("%s [%s] %s, %s\n", p.ID, utils.Initials(p.Author.FirstName, p.Author.LastName),
		utils.FullName(p.Author.FirstName, p.Author.LastName), utils.TimeAgo(p.CreatedAt, now))
	if p.Text != "" {
		a.printf("    %s\n", p.Text)
	}
	a.printf("    %s%d likes  %d comments %s\n", liked, p.LikesCount, p.CommentsCount, saved)
}

func runFeed(ctx context.Context, a *app, args []string) error {
	fs := newFlags("feed")
	pages := fs.Int("pages", 1, "number of pages to load")
	showSaved := fs.Bool("saved", false, "list saved posts instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	now := time.Now()
	if *showSaved {
		posts, err := a.feed.Saved(ctx)
		if err != nil {
			return err
		}
		for _, p := range posts {
			printPost(a, p, now)
		}
		return nil
	}

	if err := a.feed.Load(ctx); err != nil {
		return err
	}
	for i := 1; i < *pages && a.feed.HasMore(); i++ {
		if err := a.feed.LoadMore(ctx); err != nil {
			return err
		}
	}
	for _, p := range a.feed.Posts() {
		printPost(a, p, now)
	}
	if a.feed.HasMore() {
		a.printf("more posts available, use -pages %d\n", *pages+1)
	}
	return nil
}

func runLike(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "post id")
	if err != nil {
		return err
	}
	res, err := a.feed.ToggleLike(ctx, id)
	if err != nil {
		return err
	}
	state := "unliked"
	if res.IsLiked {
		state = "liked"
	}
	a.printf("%s %s (%d likes)\n", state, id, res.LikesCount)
	return nil
}

func runSave(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "post id")
	if err != nil {
		return err
	}
	res, err := a.feed.ToggleSave(ctx, id)
	if err != nil {
		return err
	}
	if res.IsSaved {
		a.printf("saved %s\n", id)
	} else {
		a.printf("removed %s from saved\n", id)
	}
	return nil
}

func (a *app) commentsModal(id string) *views.CommentsModal {
	post, ok := a.feed.Post(id)
	if !ok {
		post = models.Post{ID: id}
	}
	modal := views.NewCommentsModal(a.svc.Posts, a.cache, a.guard, post)
	modal.OnLike = a.feed.ApplyLike
	return modal
}

func runComments(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "post id")
	if err != nil {
		return err
	}
	modal := a.commentsModal(id)
	if err := modal.Open(ctx); err != nil {
		return err
	}
	now := time.Now()
	for _, c := range modal.Comments() {
		a.printf("%s [%s] %s: %s\n", utils.TimeAgo(c.CreatedAt, now),
			utils.Initials(c.Author.FirstName, c.Author.LastName), c.ID, c.Text)
	}
	return nil
}

func runComment(ctx context.Context, a *app, args []string) error {
	fs := newFlags("comment")
	edit := fs.String("edit", "", "comment id to edit")
	del := fs.String("delete", "", "comment id to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: fitly comment [-edit id|-delete id] <post id> [text]")
	}
	modal := a.commentsModal(fs.Arg(0))
	text := strings.Join(fs.Args()[1:], " ")

	switch {
	case *del != "":
		if err := modal.Delete(ctx, *del); err != nil {
			return err
		}
		a.printf("deleted comment %s\n", *del)
	case *edit != "":
		c, err := modal.Edit(ctx, *edit, text)
		if err != nil {
			return err
		}
		a.printf("updated comment %s\n", c.ID)
	default:
		c, err := modal.Add(ctx, text)
		if err != nil {
			return err
		}
		a.printf("added comment %s\n", c.ID)
	}
	return nil
}

func loadFiles(paths []string) ([]api.File, error) {
	files := make([]api.File, 0, len(paths))
	for _, p := range paths {
		f, err := api.FileFromPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func runPost(ctx context.Context, a *app, args []string) error {
	fs := newFlags("post")
	text := fs.String("text", "", "caption")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files, err := loadFiles(fs.Args())
	if err != nil {
		return err
	}
	picker := views.NewNewOutfitPicker(a.svc.Posts, a.feed, a.cropMaxSide())
	picker.AddFiles(files)
	post, err := picker.Submit(ctx, *text)
	if err != nil {
		return err
	}
	a.printf("posted %s\n", post.ID)
	return nil
}

func (a *app) cropMaxSide() int {
	if a.cfg.CropUploads {
		return a.cfg.CropMaxSide
	}
	return 0
}

func printItems(a *app, items []models.WardrobeItem) {
	for _, it := range items {
		a.printf("%s  %-12s %-14s %s\n", it.ID, it.CategoryGroup.Label(), it.Category, it.ImageURL)
	}
}

func runWardrobe(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: fitly wardrobe list|upload|delete|tags|import")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := newFlags("wardrobe list")
		group := fs.String("group", "", "category group (upper_wear, bottom_wear, outer_wear, footwear, accessories)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var g models.CategoryGroup
		if *group != "" {
			parsed, err := models.ParseCategoryGroup(*group)
			if err != nil {
				return err
			}
			g = parsed
		}
		if err := a.wardrobe.Load(ctx); err != nil {
			return err
		}
		printItems(a, a.wardrobe.Filter(g))
		counts := a.wardrobe.GroupCounts()
		for _, cg := range models.AllCategoryGroups() {
			a.printf("%s: %d  ", cg.Label(), counts[cg])
		}
		a.printf("\n")
	case "upload":
		files, err := loadFiles(rest)
		if err != nil {
			return err
		}
		items, err := a.wardrobe.Upload(ctx, files)
		if err != nil {
			return err
		}
		printItems(a, items)
	case "delete":
		id, err := oneArg(rest, "item id")
		if err != nil {
			return err
		}
		if err := a.wardrobe.Delete(ctx, id); err != nil {
			return err
		}
		a.printf("deleted %s\n", id)
	case "tags":
		tags, err := a.wardrobe.Tags(ctx)
		if err != nil {
			return err
		}
		for _, t := range tags {
			a.printf("%-20s %-12s %d\n", t.Name, t.CategoryGroup.Label(), t.Count)
		}
	case "import":
		fs := newFlags("wardrobe import")
		dryRun := fs.Bool("dry-run", false, "print the scraped product without uploading")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		url, err := oneArg(fs.Args(), "product url")
		if err != nil {
			return err
		}
		if *dryRun {
			product, err := scrapers.NewImporter(a.cfg.ImportHeadless).Import(ctx, url)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(product, "", "  ")
			a.printf("%s\n", b)
			return nil
		}
		items, err := a.wardrobe.ImportFromURL(ctx, url)
		if err != nil {
			return err
		}
		printItems(a, items)
	default:
		return fmt.Errorf("unknown wardrobe command %q", sub)
	}
	return nil
}

func runRecommend(ctx context.Context, a *app, args []string) error {
	fs := newFlags("recommend")
	categories := fs.String("categories", "", "comma separated category groups")
	date := fs.String("date", "", "also plan the outfit for this date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var cats []string
	for _, c := range strings.Split(*categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	rec, err := a.styling.Recommend(ctx, strings.Join(fs.Args(), " "), cats)
	if err != nil {
		return err
	}
	a.printf("%s\n", rec.CombinedImageURL)
	printItems(a, rec.Items)
	if *date != "" {
		if _, err := a.styling.SaveToCalendar(ctx, *date); err != nil {
			return err
		}
		a.printf("planned for %s\n", *date)
	}
	return nil
}

func printOutfit(a *app, o models.CalendarOutfit) {
	a.printf("%s  %s  (%d items)  %s\n", o.OutfitDate, o.Prompt, len(o.Items), o.CombinedImageURL)
}

func runCalendar(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: fitly calendar list|show|save|delete")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		fs := newFlags("calendar list")
		month := fs.String("month", "", "only this month (YYYY-MM)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.calendar.Refresh(ctx); err != nil {
			return err
		}
		if *month == "" {
			for _, o := range a.calendar.Outfits() {
				printOutfit(a, o)
			}
			return nil
		}
		m, err := time.Parse("2006-01", *month)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", *month)
		}
		for _, d := range a.calendar.Month(m.Year(), m.Month()) {
			o, _ := a.calendar.OutfitFor(d)
			printOutfit(a, o)
		}
	case "show":
		date, err := oneArg(rest, "date")
		if err != nil {
			return err
		}
		if err := a.calendar.Refresh(ctx); err != nil {
			return err
		}
		o, ok := a.calendar.OutfitFor(date)
		if !ok {
			a.printf("nothing planned for %s\n", date)
			return nil
		}
		printOutfit(a, o)
		printItems(a, o.Items)
	case "save":
		fs := newFlags("calendar save")
		prompt := fs.String("prompt", "", "what the outfit is for")
		image := fs.String("image", "", "combined outfit image url")
		itemIDs := fs.String("items", "", "comma separated wardrobe item ids")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		date, err := oneArg(fs.Args(), "date")
		if err != nil {
			return err
		}
		outfit := models.CalendarOutfit{OutfitDate: date, Prompt: *prompt, CombinedImageURL: *image}
		for _, id := range strings.Split(*itemIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				outfit.Items = append(outfit.Items, models.WardrobeItem{ID: id})
			}
		}
		if _, err := a.calendar.Save(ctx, outfit); err != nil {
			return err
		}
		a.printf("planned for %s\n", date)
	case "delete":
		date, err := oneArg(rest, "date")
		if err != nil {
			return err
		}
		if err := a.calendar.Delete(ctx, date); err != nil {
			return err
		}
		a.printf("cleared %s\n", date)
	default:
		return fmt.Errorf("unknown calendar command %q", sub)
	}
	return nil
}

// runChat sends one message, or reads a conversation from stdin when none is given.
func runChat(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		reply, err := a.chat.Send(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		a.printf("%s\n", reply)
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	a.printf("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "/exit" {
			break
		}
		if line != "" {
			reply, err := a.chat.Send(ctx, line)
			if err != nil {
				a.printf("! %s\n", a.chat.ErrorMessage())
			} else {
				a.printf("%s\n", reply)
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.printf("> ")
	}
	return scanner.Err()
}

func runStudio(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: fitly studio list|generate|save|export")
	}
	sub, rest := args[0], args[1:]
	if err := a.studio.Load(ctx); err != nil {
		return err
	}
	switch sub {
	case "list":
		a.printf("tokens remaining: %d\n", a.studio.Tokens())
		for _, img := range a.studio.Images() {
			a.printf("%s  item=%s  %s\n", img.ID, img.WardrobeItemID, img.EnhancedImageURL)
		}
		for _, s := range a.studio.SavedImages() {
			a.printf("saved %s  %s\n", s.ID, s.ImageURL)
		}
	case "generate":
		id, err := oneArg(rest, "wardrobe item id")
		if err != nil {
			return err
		}
		img, err := a.studio.Generate(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s  %s\ntokens remaining: %d\n", img.ID, img.EnhancedImageURL, a.studio.Tokens())
	case "save":
		id, err := oneArg(rest, "studio image id")
		if err != nil {
			return err
		}
		saved, err := a.studio.Save(ctx, id)
		if err != nil {
			return err
		}
		a.printf("saved as %s\n", saved.ID)
	case "export":
		fs := newFlags("studio export")
		prefix := fs.String("prefix", "", "object key prefix (default studio/<user id>)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *prefix == "" {
			*prefix = "studio"
			if u := a.session.CurrentUser(); u != nil {
				*prefix += "/" + u.ID
			}
		}
		exporter, err := utils.NewS3Exporter(ctx, a.cfg.AWSRegion, a.cfg.ExportBucket)
		if err != nil {
			return err
		}
		keys, err := a.studio.Export(ctx, exporter, *prefix)
		if err != nil {
			return err
		}
		for url, key := range keys {
			a.printf("s3://%s/%s  <-  %s\n", a.cfg.ExportBucket, key, url)
		}
	default:
		return fmt.Errorf("unknown studio command %q", sub)
	}
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	var (
		user *models.UserProfile
		err  error
	)
	switch sub {
	case "show":
		user, err = a.profile.Load(ctx)
	case "rename":
		if len(args) != 2 {
			return fmt.Errorf("usage: fitly profile rename <first> <last>")
		}
		user, err = a.profile.Rename(ctx, args[0], args[1])
	case "image":
		path, perr := oneArg(args, "image path")
		if perr != nil {
			return perr
		}
		f, ferr := api.FileFromPath(path)
		if ferr != nil {
			return ferr
		}
		user, err = a.profile.UploadImage(ctx, f)
	default:
		return fmt.Errorf("unknown profile command %q", sub)
	}
	if err != nil {
		return err
	}
	a.printf("[%s] %s <%s>\n", utils.Initials(user.FirstName, user.LastName), utils.FullName(user.FirstName, user.LastName), user.Email)
	if user.ProfileImageURL != "" {
		a.printf("%s\n", user.ProfileImageURL)
	}
	return nil
}
