// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSucceededCountsRunes(t *testing.T) {
	tests := []struct {
		text      string
		wantChars int
		wantWords int
	}{
		{"", 0, 0},
		{"a", 1, 0},
		{"Hello world", 11, 5},
		{"冷战与大航海时代", 8, 4},
		{"第1集\n\n正文", 7, 3},
	}
	for _, tt := range tests {
		r := Succeeded(tt.text)
		assert.True(t, r.OK())
		assert.Equal(t, tt.wantChars, r.CharCount, tt.text)
		assert.Equal(t, tt.wantWords, r.WordEstimate, tt.text)
	}
}

func TestResultMarshalJSON(t *testing.T) {
	data, err := Succeeded("<b>&</b> 中").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"text":"<b>&</b> 中","char_count":10,"word_estimate":5}`, string(data))

	data, err = Failed(KindFileNotFound, FileNotFoundMessage).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"error":"File not found"}`, string(data))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "file not found", KindFileNotFound.String())
	assert.Equal(t, "missing dependency", KindMissingDependency.String())
}
