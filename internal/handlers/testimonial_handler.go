package handlers

import (
	"sakanly_backend/internal/middleware"
	"sakanly_backend/internal/models"
	"sakanly_backend/internal/services"
	"sakanly_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TestimonialHandler struct {
	*BaseHandler
	testimonialService services.TestimonialService
}

func NewTestimonialHandler(base *BaseHandler, testimonialService services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		BaseHandler:        base,
		testimonialService: testimonialService,
	}
}

func (h *TestimonialHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/testimonials")
	{
		public.POST("", h.CreateTestimonial)
		public.GET("", h.GetTestimonials)
	}

	admin := r.Group("/admin/testimonials")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.PATCH("/:id/status", h.UpdateTestimonialStatus)
		admin.DELETE("/:id", h.DeleteTestimonial)
	}
}

func (h *TestimonialHandler) CreateTestimonial(c *gin.Context) {
	var req dto.CreateTestimonialRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	testimonial, err := h.testimonialService.CreateTestimonial(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCreated(c, testimonial, "Testimonial submitted successfully")
}

func (h *TestimonialHandler) GetTestimonials(c *gin.Context) {
	var req dto.ListTestimonialsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	result, err := h.testimonialService.GetTestimonials(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondList(c, result.Testimonials, result.Pagination, "Testimonials retrieved successfully")
}

func (h *TestimonialHandler) UpdateTestimonialStatus(c *gin.Context) {
	var req dto.UpdateTestimonialStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.testimonialService.UpdateTestimonialStatus(h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Testimonial status updated")
}

func (h *TestimonialHandler) DeleteTestimonial(c *gin.Context) {
	if err := h.testimonialService.DeleteTestimonial(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Testimonial deleted")
}
