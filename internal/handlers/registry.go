package handlers

// AppHandlers holds every HTTP handler, wired once at startup.
type AppHandlers struct {
	PropertyHandler    *PropertyHandler
	TestimonialHandler *TestimonialHandler
	ChatHandler        *ChatHandler
}
