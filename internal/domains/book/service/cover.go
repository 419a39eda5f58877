package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/book/model"

	"github.com/rs/zerolog/log"
)

type coverAction int

const (
	coverKeep coverAction = iota
	coverDelete
	coverReplace
	coverUpload
	coverRename
)

// planCover decides what happens to the cover on update. First match wins.
func planCover(hasCover, deleteRequested, newFile, titleChanged bool) coverAction {
	switch {
	case deleteRequested && hasCover:
		return coverDelete
	case newFile && hasCover:
		return coverReplace
	case newFile:
		return coverUpload
	case titleChanged && hasCover:
		return coverRename
	default:
		return coverKeep
	}
}

// coverChange is the blob work behind one update. The staged blob is new and
// must be discarded if the update does not commit; the obsolete blob is the
// one the row pointed at before and may only go once the update has committed.
type coverChange struct {
	staged   string
	obsolete string
}

// stageCover writes whatever the new cover needs without touching the current
// blob and points book at the result.
func (s *BookService) stageCover(ctx context.Context, book *model.Book, in model.BookInput, titleChanged bool) (coverChange, error) {
	var current string
	if book.HasCover() {
		current = *book.ImageAddress
	}

	var next string
	switch planCover(book.HasCover(), in.DeleteCover, in.Cover != nil, titleChanged) {
	case coverKeep:
		return coverChange{}, nil

	case coverDelete:
		book.ImageAddress = nil
		return coverChange{obsolete: current}, nil

	case coverReplace, coverUpload:
		url, err := s.blobs.Upload(ctx, in.Cover, book.Title)
		if err != nil {
			return coverChange{}, fmt.Errorf("upload cover: %w", err)
		}
		next = url

	case coverRename:
		url, err := s.blobs.Copy(ctx, current, book.Title)
		if err != nil {
			return coverChange{}, fmt.Errorf("copy cover: %w", err)
		}
		next = url
	}

	book.ImageAddress = &next
	if next == current {
		// same object name, overwritten in place
		return coverChange{}, nil
	}
	return coverChange{staged: next, obsolete: current}, nil
}

// rollback drops the staged blob after a failed update.
func (c coverChange) rollback(ctx context.Context, s *BookService) {
	if c.staged != "" {
		s.discardBlob(ctx, c.staged)
	}
}

// commit drops the superseded blob. A failure leaves an orphan for CleanupOrphanCovers.
func (c coverChange) commit(ctx context.Context, s *BookService) {
	if c.obsolete != "" {
		s.discardBlob(ctx, c.obsolete)
	}
}

func (s *BookService) discardBlob(ctx context.Context, url string) {
	if err := s.blobs.Remove(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to remove cover blob")
	}
}
