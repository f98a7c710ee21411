package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"

	"sakanly_backend/internal/logger"
	"sakanly_backend/internal/middleware"
	"sakanly_backend/internal/models"
	"sakanly_backend/internal/services"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/internal/storage"
	"sakanly_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadImages = 12

type PropertyHandler struct {
	*BaseHandler
	propertyService services.PropertyService
	favoriteService services.FavoriteService
	store           storage.Storage
}

func NewPropertyHandler(
	base *BaseHandler,
	propertyService services.PropertyService,
	favoriteService services.FavoriteService,
	store storage.Storage,
) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
		favoriteService: favoriteService,
		store:           store,
	}
}

func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/properties")
	{
		public.GET("", h.GetAllProperties)
		public.GET("/search", h.SearchProperties)
		public.GET("/most-viewed", h.GetMostViewed)
		public.GET("/:id", h.GetPropertyDetails)
		public.GET("/:id/similar", h.GetSimilarProperties)
	}

	// Protected routes
	protected := r.Group("/properties")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.AddProperty)
		protected.PATCH("/:id", h.UpdateProperty)
		protected.DELETE("/:id", h.DeleteProperty)
		protected.GET("/my", h.GetMyProperties)
		protected.GET("/favorites", h.GetMyFavorites)
		protected.POST("/:id/favorite", h.AddFavorite)
		protected.DELETE("/:id/favorite", h.RemoveFavorite)
		protected.GET("/:id/favorite", h.CheckFavorite)
	}

	// Admin routes
	admin := r.Group("/admin/properties")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.GetPendingProperties)
		admin.PATCH("/:id/approve", h.ApproveProperty)
		admin.DELETE("/:id/deny", h.DenyProperty)
	}
}

// --- Public handlers ---

func (h *PropertyHandler) GetAllProperties(c *gin.Context) {
	result, err := h.propertyService.GetAllProperties(h.GetDB(c), c.Request.URL.Query())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondList(c, result.Properties, result.Pagination, "Properties retrieved successfully")
}

func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	result, err := h.propertyService.SearchProperties(h.GetDB(c), c.Request.URL.Query())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondList(c, result.Properties, result.Pagination, "Search completed successfully")
}

func (h *PropertyHandler) GetMostViewed(c *gin.Context) {
	cards, err := h.propertyService.GetMostViewedProperties(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCount(c, cards, len(cards), "Most viewed properties retrieved successfully")
}

func (h *PropertyHandler) GetPropertyDetails(c *gin.Context) {
	property, err := h.propertyService.GetPropertyDetails(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, property, "")
}

func (h *PropertyHandler) GetSimilarProperties(c *gin.Context) {
	similar, err := h.propertyService.GetSimilarProperties(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCount(c, similar, len(similar), "Similar properties retrieved successfully")
}

// --- Protected handlers ---

func (h *PropertyHandler) AddProperty(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	uploads, ok := h.saveUploadedImages(c)
	if !ok {
		return
	}

	property, err := h.propertyService.AddProperty(c.Request.Context(), h.GetDB(c), caller, &req, uploads)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCreated(c, property, "Property submitted successfully")
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	uploads, ok := h.saveUploadedImages(c)
	if !ok {
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), h.GetDB(c), caller, c.Param("id"), &req, uploads)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, property, "Property updated successfully")
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), h.GetDB(c), caller, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Property deleted successfully")
}

func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.GetUserProperties(h.GetDB(c), caller.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCount(c, properties, len(properties), "Your properties retrieved successfully")
}

// --- Favorites ---

func (h *PropertyHandler) AddFavorite(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(h.GetDB(c), caller.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Property added to favorites")
}

func (h *PropertyHandler) RemoveFavorite(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(h.GetDB(c), caller.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Property removed from favorites")
}

func (h *PropertyHandler) CheckFavorite(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	status, err := h.favoriteService.CheckFavoriteStatus(h.GetDB(c), caller.ID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, status, "")
}

func (h *PropertyHandler) GetMyFavorites(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	properties, err := h.favoriteService.GetWishlist(h.GetDB(c), caller.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCount(c, properties, len(properties), "Favorite properties retrieved successfully")
}

// --- Admin handlers ---

func (h *PropertyHandler) GetPendingProperties(c *gin.Context) {
	properties, err := h.propertyService.GetPendingProperties(h.GetDB(c), c.Query("category"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondCount(c, properties, len(properties), "Pending properties retrieved successfully")
}

func (h *PropertyHandler) ApproveProperty(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	var req dto.ApprovePropertyRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidateJSON(c, &req) {
		return
	}

	property, err := h.propertyService.ApproveProperty(c.Request.Context(), h.GetDB(c), caller.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, property, "Property approved successfully")
}

func (h *PropertyHandler) DenyProperty(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	// Reason may arrive as a query param or a small JSON body.
	reason := c.Query("reason")
	if c.Request.ContentLength > 0 {
		var req dto.DenyPropertyRequest
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
		if req.Reason != "" {
			reason = req.Reason
		}
	}

	if err := h.propertyService.DenyProperty(c.Request.Context(), h.GetDB(c), caller.ID, c.Param("id"), reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, nil, "Property denied and removed")
}

// --- Upload helper ---

// saveUploadedImages persists every "images" part of a multipart request to
// the image store. A non-multipart request yields an empty set.
func (h *PropertyHandler) saveUploadedImages(c *gin.Context) ([]dto.UploadedImage, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, true
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > maxUploadImages {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Too many images in one request"))
		return nil, false
	}

	ctx := c.Request.Context()
	uploads := make([]dto.UploadedImage, 0, len(files))
	for _, file := range files {
		upload, err := h.saveOne(c, file)
		if err != nil {
			logger.CtxWithError(ctx, "failed to store uploaded image", err, "filename", file.Filename)
			h.HandleServiceError(c, apperrors.InternalError("upload", err))
			return nil, false
		}
		uploads = append(uploads, upload)
	}
	return uploads, true
}

func (h *PropertyHandler) saveOne(c *gin.Context, file *multipart.FileHeader) (dto.UploadedImage, error) {
	src, err := file.Open()
	if err != nil {
		return dto.UploadedImage{}, err
	}
	defer src.Close()

	ctx := c.Request.Context()
	externalID := uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	if err := h.store.Save(ctx, externalID, src, contentType); err != nil {
		return dto.UploadedImage{}, err
	}

	url, err := h.store.GetURL(ctx, externalID)
	if err != nil {
		return dto.UploadedImage{}, err
	}
	return dto.UploadedImage{ExternalID: externalID, URL: url}, nil
}
