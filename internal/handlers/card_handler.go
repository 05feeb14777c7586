package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"geticard_backend/internal/auth"
	"geticard_backend/internal/middleware"
	"geticard_backend/internal/services"
	"geticard_backend/internal/services/dto"
	"geticard_backend/pkg/apperrors"
)

type CardHandler struct {
	*BaseHandler
	cardService services.CardService
	tokens      *auth.TokenIssuer
	// baseURL, when configured, overrides the per-request base used to
	// absolutize legacy image references.
	baseURL string
}

func NewCardHandler(base *BaseHandler, cardService services.CardService, tokens *auth.TokenIssuer, baseURL string) *CardHandler {
	return &CardHandler{
		BaseHandler: base,
		cardService: cardService,
		tokens:      tokens,
		baseURL:     baseURL,
	}
}

// RegisterRoutes registers the card routes. Create and read are public;
// update and delete require a bearer token.
func (h *CardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/card", h.Create)
	rg.GET("/card/:id", h.Get)

	authRequired := middleware.AuthMiddleware(h.tokens)
	rg.PUT("/card/:id", authRequired, h.Update)
	rg.DELETE("/card/:id", authRequired, h.Delete)
}

func (h *CardHandler) Create(c *gin.Context) {
	var req dto.CreateCardRequest

	if isMultipart(c) {
		closers, ok := h.bindCreateMultipart(c, &req)
		if !ok {
			return
		}
		defer closeAll(closers)
	} else {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	resp, err := h.cardService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !resp.Created {
		c.JSON(http.StatusOK, gin.H{
			"message": "A card already exists for this email.",
			"card_id": resp.CardID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Card created successfully",
		"card_id": resp.CardID,
	})
}

func (h *CardHandler) Get(c *gin.Context) {
	cardID := c.Param("id")

	card, err := h.cardService.Get(c.Request.Context(), cardID, h.requestBaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Update(c *gin.Context) {
	cardID := c.Param("id")
	callerEmail := middleware.GetUserEmail(c)

	var req dto.UpdateCardRequest

	if isMultipart(c) {
		closers, ok := h.bindUpdateMultipart(c, &req)
		if !ok {
			return
		}
		defer closeAll(closers)
	} else {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	if err := h.cardService.Update(c.Request.Context(), cardID, callerEmail, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card updated successfully",
	})
}

func (h *CardHandler) Delete(c *gin.Context) {
	cardID := c.Param("id")
	callerEmail := middleware.GetUserEmail(c)

	if err := h.cardService.Delete(c.Request.Context(), cardID, callerEmail); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card deleted successfully",
	})
}

// bindCreateMultipart fills the create request from a multipart form. The
// returned closers must be closed after the service call consumed the
// payload readers.
func (h *CardHandler) bindCreateMultipart(c *gin.Context, req *dto.CreateCardRequest) ([]multipart.File, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req.ContactEmail = c.PostForm("contact_email")
	req.Name = c.PostForm("name")
	req.Bio = c.PostForm("bio")
	req.Company = c.PostForm("company")
	req.Whatsapp = c.PostForm("whatsapp")
	req.Instagram = c.PostForm("instagram")
	req.Linkedin = c.PostForm("linkedin")
	req.Site = c.PostForm("site")
	req.PaymentKey = c.PostForm("payment_key")

	if !h.Validate(c, req) {
		return nil, false
	}

	var closers []multipart.File

	if avatar, err := openFirstFile(form, "avatar"); err != nil {
		closeAll(closers)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read avatar upload"))
		return nil, false
	} else if avatar != nil {
		closers = append(closers, avatar.file)
		req.Avatar = &avatar.upload
	}

	gallery, galleryClosers, err := openFiles(form, "gallery")
	if err != nil {
		closeAll(closers)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read gallery upload"))
		return nil, false
	}
	closers = append(closers, galleryClosers...)
	req.Gallery = gallery

	return closers, true
}

func (h *CardHandler) bindUpdateMultipart(c *gin.Context, req *dto.UpdateCardRequest) ([]multipart.File, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}

	req.ContactEmail = formField(form, "contact_email")
	req.Name = formField(form, "name")
	req.Bio = formField(form, "bio")
	req.Company = formField(form, "company")
	req.Whatsapp = formField(form, "whatsapp")
	req.Instagram = formField(form, "instagram")
	req.Linkedin = formField(form, "linkedin")
	req.Site = formField(form, "site")
	req.PaymentKey = formField(form, "payment_key")

	if !h.Validate(c, req) {
		return nil, false
	}

	if flag := formField(form, "replace_gallery"); flag != nil {
		switch strings.ToLower(*flag) {
		case "1", "true", "yes":
			req.ReplaceGallery = true
		}
	}

	var closers []multipart.File

	if avatar, err := openFirstFile(form, "avatar"); err != nil {
		closeAll(closers)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read avatar upload"))
		return nil, false
	} else if avatar != nil {
		closers = append(closers, avatar.file)
		req.NewAvatar = &avatar.upload
	}

	gallery, galleryClosers, err := openFiles(form, "gallery")
	if err != nil {
		closeAll(closers)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read gallery upload"))
		return nil, false
	}
	closers = append(closers, galleryClosers...)
	req.NewGallery = gallery

	return closers, true
}

// requestBaseURL prefers the configured public base URL and falls back to
// the request host.
func (h *CardHandler) requestBaseURL(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

type openedFile struct {
	file   multipart.File
	upload dto.ImageUpload
}

// openFirstFile opens the first uploaded file for the field, or nil when the
// field is absent or empty.
func openFirstFile(form *multipart.Form, field string) (*openedFile, error) {
	headers := form.File[field]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil, nil
	}

	f, err := headers[0].Open()
	if err != nil {
		return nil, err
	}

	return &openedFile{
		file: f,
		upload: dto.ImageUpload{
			Filename:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Reader:      f,
		},
	}, nil
}

func openFiles(form *multipart.Form, field string) ([]dto.ImageUpload, []multipart.File, error) {
	var uploads []dto.ImageUpload
	var closers []multipart.File

	for _, header := range form.File[field] {
		if header.Filename == "" {
			continue
		}
		f, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, f)
		uploads = append(uploads, dto.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	return uploads, closers, nil
}

func formField(form *multipart.Form, field string) *string {
	values, ok := form.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
