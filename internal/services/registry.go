package services

// ServiceContainer holds every application service, wired once at startup.
type ServiceContainer struct {
	PropertyService    PropertyService
	FavoriteService    FavoriteService
	TestimonialService TestimonialService
	ChatService        ChatService
}
