package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"geticard_backend/internal/logger"
	"geticard_backend/internal/models"
	"geticard_backend/internal/repositories"
	"geticard_backend/internal/services/dto"
	"geticard_backend/internal/storage"
	"geticard_backend/pkg/apperrors"
)

// CardService orchestrates the card lifecycle: idempotent creation by
// contact email, public reads with resolved references, owner-only updates
// and deletion, and the image attachment lifecycle against the blob store.
type CardService interface {
	Create(ctx context.Context, req *dto.CreateCardRequest) (*dto.CreateCardResponse, error)

	// Get returns the card with every image reference resolved to an
	// absolute URL against baseURL.
	Get(ctx context.Context, cardID, baseURL string) (*models.Card, error)

	// Update applies a partial update on behalf of callerEmail, which must
	// match the card's contact email.
	Update(ctx context.Context, cardID, callerEmail string, req *dto.UpdateCardRequest) error

	// Delete removes the card and best-effort releases its blobs.
	Delete(ctx context.Context, cardID, callerEmail string) error
}

type CardServiceImpl struct {
	cardRepo     repositories.CardRepository
	blobs        storage.Storage
	allowedTypes []string
}

func NewCardService(
	cardRepo repositories.CardRepository,
	blobs storage.Storage,
	allowedTypes []string,
) CardService {
	return &CardServiceImpl{
		cardRepo:     cardRepo,
		blobs:        blobs,
		allowedTypes: allowedTypes,
	}
}

// Create enforces one card per contact email by scan-then-reuse: an existing
// card's id is returned as an idempotent success instead of an error. All
// image uploads must succeed before the record is persisted; on a partial
// failure the already-stored blobs are released and nothing is written.
func (s *CardServiceImpl) Create(ctx context.Context, req *dto.CreateCardRequest) (*dto.CreateCardResponse, error) {
	if req.ContactEmail == "" {
		return nil, apperrors.NewBadRequestError("Contact email is required")
	}

	existing, err := s.cardRepo.FindByContactEmail(ctx, req.ContactEmail)
	if err == nil {
		return &dto.CreateCardResponse{CardID: existing.CardID, Created: false}, nil
	}
	if !apperrors.Is(err, repositories.ErrCardNotFound) {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	cardID := newCardID()

	var stored []string
	cleanup := func() {
		for _, path := range stored {
			if derr := s.blobs.Delete(ctx, path); derr != nil {
				logger.CtxWarn(ctx, "failed to clean up blob after aborted create", "path", path, "error", derr)
			}
		}
	}

	var avatarRef string
	if req.Avatar != nil {
		ref, path, err := s.storeImage(ctx, cardID, "avatar", req.Avatar)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, path)
		avatarRef = ref
	}

	var galleryRefs []string
	for i := range req.Gallery {
		ref, path, err := s.storeImage(ctx, cardID, "gallery", &req.Gallery[i])
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, path)
		galleryRefs = append(galleryRefs, ref)
	}

	card := &models.Card{
		CardID:       cardID,
		ContactEmail: req.ContactEmail,
		Name:         req.Name,
		Bio:          req.Bio,
		Company:      req.Company,
		Whatsapp:     req.Whatsapp,
		Instagram:    req.Instagram,
		Linkedin:     req.Linkedin,
		Site:         req.Site,
		PaymentKey:   req.PaymentKey,
		Avatar:       avatarRef,
		Gallery:      datatypes.JSONSlice[string](galleryRefs),
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		cleanup()
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	logger.CtxInfo(ctx, "card created", "card_id", cardID, "contact_email", req.ContactEmail)
	return &dto.CreateCardResponse{CardID: cardID, Created: true}, nil
}

// Get is a public point lookup. Legacy relative references are normalized to
// absolute URLs so the wire contract always returns resolvable references.
func (s *CardServiceImpl) Get(ctx context.Context, cardID, baseURL string) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCardNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	card.Avatar = absoluteRef(baseURL, card.Avatar)
	for i, ref := range card.Gallery {
		card.Gallery[i] = absoluteRef(baseURL, ref)
	}

	return card, nil
}

// Update applies provided fields as full overwrites and persists the whole
// record (last writer wins). Only the owner may update.
func (s *CardServiceImpl) Update(ctx context.Context, cardID, callerEmail string, req *dto.UpdateCardRequest) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCardNotFound) {
			return apperrors.ErrCardNotFound
		}
		return apperrors.ErrStoreUnavailable(err)
	}

	if card.ContactEmail != callerEmail {
		return apperrors.ErrNotCardOwner
	}

	applyText(&card.ContactEmail, req.ContactEmail)
	applyText(&card.Name, req.Name)
	applyText(&card.Bio, req.Bio)
	applyText(&card.Company, req.Company)
	applyText(&card.Whatsapp, req.Whatsapp)
	applyText(&card.Instagram, req.Instagram)
	applyText(&card.Linkedin, req.Linkedin)
	applyText(&card.Site, req.Site)
	applyText(&card.PaymentKey, req.PaymentKey)

	// Direct reference overrides (JSON submissions without payloads).
	if req.Avatar != nil {
		card.Avatar = *req.Avatar
	}
	if req.Gallery != nil {
		card.Gallery = datatypes.JSONSlice[string](*req.Gallery)
	}

	// Fresh uploads must all land before the record is persisted; a partial
	// failure releases what was already stored and leaves the card as it
	// was. Displaced blobs are released only after the save succeeds.
	var stored []string
	cleanup := func() {
		for _, path := range stored {
			if derr := s.blobs.Delete(ctx, path); derr != nil {
				logger.CtxWarn(ctx, "failed to clean up blob after aborted update", "path", path, "error", derr)
			}
		}
	}
	var displaced []string

	if req.NewAvatar != nil {
		ref, path, err := s.storeImage(ctx, cardID, "avatar", req.NewAvatar)
		if err != nil {
			cleanup()
			return err
		}
		stored = append(stored, path)
		if card.Avatar != "" {
			displaced = append(displaced, card.Avatar)
		}
		card.Avatar = ref
	}

	if len(req.NewGallery) > 0 {
		var newRefs []string
		for i := range req.NewGallery {
			ref, path, err := s.storeImage(ctx, cardID, "gallery", &req.NewGallery[i])
			if err != nil {
				cleanup()
				return err
			}
			stored = append(stored, path)
			newRefs = append(newRefs, ref)
		}

		if req.ReplaceGallery {
			displaced = append(displaced, card.Gallery...)
			card.Gallery = datatypes.JSONSlice[string](newRefs)
		} else {
			card.Gallery = append(card.Gallery, newRefs...)
		}
	}

	if err := s.cardRepo.Save(ctx, card); err != nil {
		cleanup()
		return apperrors.ErrStoreUnavailable(err)
	}

	for _, ref := range displaced {
		s.releaseBlob(ctx, ref)
	}

	logger.CtxInfo(ctx, "card updated", "card_id", cardID)
	return nil
}

// Delete removes the record after releasing every associated blob.
// Blob-release failures are logged and swallowed so cleanup can never block
// the delete itself.
func (s *CardServiceImpl) Delete(ctx context.Context, cardID, callerEmail string) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCardNotFound) {
			return apperrors.ErrCardNotFound
		}
		return apperrors.ErrStoreUnavailable(err)
	}

	if card.ContactEmail != callerEmail {
		return apperrors.ErrNotCardOwner
	}

	for _, ref := range card.BlobReferences() {
		s.releaseBlob(ctx, ref)
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		return apperrors.ErrStoreUnavailable(err)
	}

	logger.CtxInfo(ctx, "card deleted", "card_id", cardID)
	return nil
}

// storeImage uploads one payload under a key namespaced by card id and role,
// returning the public reference and the storage path.
func (s *CardServiceImpl) storeImage(ctx context.Context, cardID, role string, img *dto.ImageUpload) (string, string, error) {
	if !s.typeAllowed(img.ContentType) {
		return "", "", apperrors.NewBadRequestError(
			fmt.Sprintf("Unsupported file type: %s", img.ContentType))
	}

	path := fmt.Sprintf("cards/%s/%s/%s-%s",
		cardID, role, randomHex(), sanitizeFilename(img.Filename))

	if err := s.blobs.Save(ctx, path, img.Reader, img.ContentType); err != nil {
		return "", "", apperrors.ErrBlobStoreFailure(err)
	}

	ref, err := s.blobs.GetURL(ctx, path)
	if err != nil {
		return "", "", apperrors.ErrBlobStoreFailure(err)
	}

	return ref, path, nil
}

// releaseBlob deletes the blob behind a reference, logging failures instead
// of surfacing them.
func (s *CardServiceImpl) releaseBlob(ctx context.Context, ref string) {
	path := blobPath(ref)
	if path == "" {
		return
	}
	if err := s.blobs.Delete(ctx, path); err != nil {
		logger.CtxWarn(ctx, "failed to release blob", "ref", ref, "error", err)
	}
}

func (s *CardServiceImpl) typeAllowed(contentType string) bool {
	if len(s.allowedTypes) == 0 {
		return true
	}
	for _, t := range s.allowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// newCardID mints a card-<8 hex> identifier. Collision probability is
// negligible and the conditional insert rejects the rare duplicate.
func newCardID() string {
	id := uuid.New()
	return fmt.Sprintf("card-%s", hex.EncodeToString(id[:4]))
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// sanitizeFilename strips path components and characters unsafe for storage
// keys.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return "file.bin"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// absoluteRef normalizes a legacy relative reference (/uploads/...) to an
// absolute URL; references that are already absolute pass through.
func absoluteRef(baseURL, ref string) string {
	if ref == "" {
		return ref
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	base := strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return base + "/" + ref
}

// blobPath maps a stored reference back to its storage key. References are
// namespaced under cards/, so the key starts at that segment; flat legacy
// /uploads/ paths map to their bare filename.
func blobPath(ref string) string {
	if i := strings.Index(ref, "/cards/"); i >= 0 {
		return ref[i+1:]
	}
	if strings.HasPrefix(ref, "cards/") {
		return ref
	}
	if strings.HasPrefix(ref, "/uploads/") {
		return strings.TrimPrefix(ref, "/uploads/")
	}
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	return ""
}

func applyText(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
