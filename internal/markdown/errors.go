package markdown

import "errors"

var (
	// ErrUnterminatedDelimiter is returned when a code, italic or bold
	// delimiter has no closing partner
	ErrUnterminatedDelimiter = errors.New("invalid markdown, formatted section not closed")
	// ErrUnterminatedLink is returned for a [text](url construct missing its
	// closing bracket or parenthesis
	ErrUnterminatedLink = errors.New("invalid markdown, unclosed link")
	// ErrUnterminatedImage is returned for an ![alt](url construct missing its
	// closing bracket or parenthesis
	ErrUnterminatedImage = errors.New("invalid markdown, unclosed image")
	// ErrUnknownSpanKind signals a span kind with no HTML mapping
	ErrUnknownSpanKind = errors.New("unknown span kind")
	// ErrUnknownBlockType signals a block type the tree builder cannot handle
	ErrUnknownBlockType = errors.New("unknown block type")
)
