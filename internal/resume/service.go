package resume

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
)

// ProfileStore is the persistence surface the upload service needs.
type ProfileStore interface {
	UpsertStudentProfile(ctx context.Context, userID uuid.UUID, resumeURL string, skills []string, parsed *oracle.ParsedResume) (uuid.UUID, error)
	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*db.StudentProfile, error)
}

// Service runs the resume upload flow: extract text, parse through the
// oracle, persist the document, upsert the profile.
type Service struct {
	store  ProfileStore
	oracle oracle.Oracle
	blobs  BlobStore
}

// NewService creates an upload service.
func NewService(store ProfileStore, o oracle.Oracle, blobs BlobStore) *Service {
	return &Service{store: store, oracle: o, blobs: blobs}
}

// Upload processes one uploaded resume for a student. Text extraction and
// resume parsing failures are hard stops; nothing is persisted on failure.
func (s *Service) Upload(ctx context.Context, studentID uuid.UUID, filename, contentType string, data []byte) (*db.StudentProfile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("resume file is empty")
	}

	text, err := ExtractText(contentType, data)
	if err != nil {
		return nil, err
	}

	parsed, err := s.oracle.ParseResume(ctx, text)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s-%d%s", studentID, time.Now().UnixMilli(), extensionFor(contentType, filename))
	resumeURL, err := s.blobs.Save(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume document: %w", err)
	}

	if _, err := s.store.UpsertStudentProfile(ctx, studentID, resumeURL, parsed.Skills, parsed); err != nil {
		return nil, err
	}

	return s.store.GetStudentProfile(ctx, studentID)
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case ContentTypePDF:
		return ".pdf"
	case ContentTypeDocx:
		return ".docx"
	case ContentTypeText:
		return ".txt"
	}
	// Fall back to whatever the client named the file.
	for i := len(filename) - 1; i >= 0 && filename[i] != '/'; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
