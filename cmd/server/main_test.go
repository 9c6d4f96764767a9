package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseZerologLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseZerologLevel(" warning "))
	assert.Equal(t, zerolog.ErrorLevel, parseZerologLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseZerologLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, parseZerologLevel(""))
}
