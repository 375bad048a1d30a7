package api

// Services bundles every resource service over one client.
type Services struct {
	Auth        *AuthService
	Profile     *ProfileService
	Posts       *PostService
	Wardrobe    *WardrobeService
	Styling     *StylingService
	Calendar    *CalendarService
	Chat        *ChatService
	Studio      *StudioService
	SavedImages *SavedImageService
}

func NewServices(c *Client) *Services {
	return &Services{
		Auth:        NewAuthService(c),
		Profile:     NewProfileService(c),
		Posts:       NewPostService(c),
		Wardrobe:    NewWardrobeService(c),
		Styling:     NewStylingService(c),
		Calendar:    NewCalendarService(c),
		Chat:        NewChatService(c),
		Studio:      NewStudioService(c),
		SavedImages: NewSavedImageService(c),
	}
}
