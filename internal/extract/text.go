// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// errUndecodable is wrapped when content is neither UTF-8 nor GBK.
var errUndecodable = errors.New("content is neither valid UTF-8 nor GBK")

// lineEndings rewrites CRLF and lone CR line endings to LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// extractText returns the file content with line endings normalized to LF.
func extractText(path string) (string, error) {
	return readDecoded(path)
}

// readDecoded reads path as UTF-8, falling back to GBK, and normalizes line
// endings to LF.
func readDecoded(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError(path, err, types.KindExtraction)
	}
	text, err := decode(data)
	if err != nil {
		return "", newError(types.KindDecode, path, err)
	}
	return lineEndings.Replace(text), nil
}

// decode interprets data as UTF-8, or as GBK when it is not valid UTF-8.
// The GBK decoder substitutes U+FFFD for invalid sequences instead of
// failing; any substitution is treated as a decode failure.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Join(errUndecodable, err)
	}
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", errUndecodable
	}
	return text, nil
}
