package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAcceptKey(t *testing.T) {
	// the example handshake from RFC 6455 section 1.3
	got := GenerateAcceptKey("dGhlIHNhbXBsZSBub25jZQ==")

	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", got)
}
