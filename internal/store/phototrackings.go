package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhotoTrackingStore owns photo tracking records. Inline image payloads
// are deliberately not durable: only PhotoCount and metadata survive a
// restart, and the photo list comes back empty on reload. This keeps the
// slot small regardless of how large the images are.
type PhotoTrackingStore struct {
	c *collection[PhotoTracking]
}

func NewPhotoTrackingStore(s *Store) *PhotoTrackingStore {
	c := newCollection(s, slotPhotoTrackings, func(p *PhotoTracking) string { return p.ID })
	c.sanitize = func(p *PhotoTracking) {
		p.Photos = []Photo{}
	}
	c.normalize = func(p *PhotoTracking) {
		if p.Photos == nil {
			p.Photos = []Photo{}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	c.load()
	return &PhotoTrackingStore{c: c}
}

type CreatePhotoTracking struct {
	ProjectName string
	Category    PhotoCategory
	Photos      []Photo
	Tags        []string
	Notes       string
}

type PhotoTrackingPatch struct {
	ProjectName *string
	Category    *PhotoCategory
	Photos      []Photo
	Tags        []string
	Notes       *string
}

func (ps *PhotoTrackingStore) Refresh() {
	ps.c.load()
}

func (ps *PhotoTrackingStore) List() []PhotoTracking {
	return ps.c.List()
}

func (ps *PhotoTrackingStore) Get(id string) (*PhotoTracking, error) {
	p, ok := ps.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (ps *PhotoTrackingStore) Create(dto CreatePhotoTracking) (*PhotoTracking, error) {
	if len(dto.Photos) > MaxPhotosPerRecord {
		return nil, fmt.Errorf("at most %d photos per record", MaxPhotosPerRecord)
	}
	now := time.Now().UTC()
	photos := dto.Photos
	if photos == nil {
		photos = []Photo{}
	}
	for i := range photos {
		if photos[i].ID == "" {
			photos[i].ID = uuid.NewString()
		}
		if photos[i].UploadedAt.IsZero() {
			photos[i].UploadedAt = now
		}
	}
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	p := PhotoTracking{
		ID:          uuid.NewString(),
		ProjectName: dto.ProjectName,
		Category:    dto.Category,
		Photos:      photos,
		PhotoCount:  len(photos),
		Tags:        tags,
		Notes:       dto.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := ps.c.Insert(p)
	return &p, err
}

func (ps *PhotoTrackingStore) Update(id string, patch PhotoTrackingPatch) (*PhotoTracking, error) {
	if patch.Photos != nil && len(patch.Photos) > MaxPhotosPerRecord {
		return nil, fmt.Errorf("at most %d photos per record", MaxPhotosPerRecord)
	}
	p, err := ps.c.Apply(id, func(p *PhotoTracking) {
		if patch.ProjectName != nil {
			p.ProjectName = *patch.ProjectName
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Photos != nil {
			now := time.Now().UTC()
			for i := range patch.Photos {
				if patch.Photos[i].ID == "" {
					patch.Photos[i].ID = uuid.NewString()
				}
				if patch.Photos[i].UploadedAt.IsZero() {
					patch.Photos[i].UploadedAt = now
				}
			}
			p.Photos = patch.Photos
		}
		if patch.Tags != nil {
			p.Tags = patch.Tags
		}
		if patch.Notes != nil {
			p.Notes = *patch.Notes
		}
		// PhotoCount mirrors the photo list at save time.
		p.PhotoCount = len(p.Photos)
		p.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &p, err
	}
	return &p, nil
}

func (ps *PhotoTrackingStore) Delete(id string) error {
	return ps.c.Remove(id)
}
