package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repotutor/repotutor/pkg/controller"
)

func TestPrintDisplay_TracksFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	display := &printDisplay{writer: buf}

	display.Set("Loading repository...")
	assert.False(t, display.Failed())

	display.Set("Error: rate limited")
	assert.True(t, display.Failed())

	assert.Equal(t, "Loading repository...\nError: rate limited\n", buf.String())
}

func TestPrintLog_FormatsEntriesAndTracksFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	log := &printLog{writer: buf}

	log.Append(controller.Entry{Kind: controller.EntryYou, Text: "why?"})
	log.Append(controller.Entry{Kind: controller.EntryBot, Text: "because"})
	assert.False(t, log.failed)

	log.Append(controller.Entry{Kind: controller.EntryError, Text: "boom"})
	assert.True(t, log.failed)

	assert.Equal(t, "You: why?\nBot: because\nError: boom\n", buf.String())
}
