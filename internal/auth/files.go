package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/set-night/vaultbot/internal/domain"
)

func isDoneKeyword(text string) bool {
	text = strings.TrimSpace(text)
	for _, kw := range doneKeywords {
		if strings.EqualFold(text, kw) {
			return true
		}
	}
	return false
}

func (m *Machine) finishUpload(ctx context.Context, ev Event) Outcome {
	if !isDoneKeyword(ev.Text) {
		return m.rejectPayload(ctx, ev)
	}

	count := len(m.sessions.Uploads(ev.UserID))
	m.transition(ev.UserID, domain.StateActive)
	m.record(ctx, ev.UserID, fmt.Sprintf(logUploadDone, count))
	return replyMenu(TextUploadComplete, MenuMain)
}

func (m *Machine) rejectPayload(ctx context.Context, ev Event) Outcome {
	m.record(ctx, ev.UserID, logUnsupported)
	return fail(domain.ErrUnsupportedPayload, TextUnsupportedFile)
}

// uploadName picks the stored file name for an attachment.
func uploadName(att domain.Attachment) string {
	switch att.Kind {
	case domain.AttachmentPhoto:
		return fmt.Sprintf("photo_%s.jpg", att.FileID)
	case domain.AttachmentAudio:
		if att.FileName != "" {
			return att.FileName
		}
		return "audio.mp3"
	default:
		if att.FileName != "" {
			return att.FileName
		}
		return fmt.Sprintf("document_%s", att.FileID)
	}
}

func (m *Machine) upload(ctx context.Context, ev Event) Outcome {
	att := ev.Attachment
	if att.Kind == domain.AttachmentUnsupported {
		return m.rejectPayload(ctx, ev)
	}

	name := uploadName(att)

	data, err := m.downloader.Download(ctx, att.FileID)
	if err != nil {
		m.record(ctx, ev.UserID, fmt.Sprintf(logDownloadFailed, name, err))
		return fail(&domain.StorageError{Op: "download", Name: name, Err: err}, TextDownloadFailed)
	}

	if err := m.gateway.Upload(ctx, data, name); err != nil {
		m.record(ctx, ev.UserID, fmt.Sprintf(logUploadFailed, name, err))
		return fail(&domain.StorageError{Op: "upload", Name: name, Err: err}, fmt.Sprintf(TextUploadFailed, name))
	}

	m.sessions.AddUpload(ev.UserID, name)

	switch att.Kind {
	case domain.AttachmentPhoto:
		m.record(ctx, ev.UserID, fmt.Sprintf(logUploadedPhoto, name))
		return reply(TextPhotoSaved)
	case domain.AttachmentAudio:
		m.record(ctx, ev.UserID, fmt.Sprintf(logUploadedAudio, name))
		return reply(TextAudioSaved)
	default:
		m.record(ctx, ev.UserID, fmt.Sprintf(logUploadedFile, name))
		return reply(fmt.Sprintf(TextDocumentSaved, name))
	}
}

// selection is a resolved delete-by-number input.
type selection struct {
	pos int
	ref domain.FileRef
}

// resolveSelection maps a 1-based number to the pending index entry.
func (m *Machine) resolveSelection(userID int64, input string) (selection, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return selection{}, &domain.SelectionError{Reason: domain.ReasonNotANumber, Input: input}
	}

	index := m.sessions.PendingIndex(userID)
	if n < 1 || n > len(index) {
		return selection{}, &domain.SelectionError{Reason: domain.ReasonOutOfRange, Input: input}
	}

	ref := index[n-1]
	if ref.Deleted {
		return selection{}, &domain.SelectionError{Reason: domain.ReasonAlreadyDeleted, Input: input}
	}
	return selection{pos: n - 1, ref: ref}, nil
}

func (m *Machine) deleteByNumber(ctx context.Context, ev Event) Outcome {
	sel, err := m.resolveSelection(ev.UserID, ev.Text)
	if err != nil {
		return m.selectionFailed(ctx, ev, err)
	}

	if err := m.gateway.Delete(ctx, sel.ref.ID); err != nil {
		m.record(ctx, ev.UserID, fmt.Sprintf(logDeleteFailed, sel.ref.Name, err))
		return fail(&domain.StorageError{Op: "delete", Name: sel.ref.Name, Err: err}, fmt.Sprintf(TextDeleteFailed, sel.ref.Name))
	}

	m.sessions.MarkDeleted(ev.UserID, sel.pos)
	m.record(ctx, ev.UserID, fmt.Sprintf(logDeleted, sel.ref.Name))
	return reply(fmt.Sprintf(TextFileDeleted, sel.ref.Name))
}

func (m *Machine) rejectSelection(ctx context.Context, ev Event) Outcome {
	err := &domain.SelectionError{Reason: domain.ReasonUnsupportedInput, Input: ev.Attachment.Kind.String()}
	return m.selectionFailed(ctx, ev, err)
}

func (m *Machine) selectionFailed(ctx context.Context, ev Event, err error) Outcome {
	reason := domain.SelectionReason("unknown")
	input := ev.Text
	if se, ok := err.(*domain.SelectionError); ok {
		reason = se.Reason
		input = se.Input
	}
	m.record(ctx, ev.UserID, fmt.Sprintf(logBadSelection, input, reason))
	return fail(err, TextInvalidNumber)
}
