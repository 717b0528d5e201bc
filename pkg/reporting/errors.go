package reporting

import "errors"

var (
	ErrDraftDocumentNotFound = errors.New("draft document not found")
	ErrTemplateCorrupted     = errors.New("document template corrupted")
)
