package photo

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"photoframe/overlay"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// maxTextChunk caps how much of a single PNG metadata chunk is read.
const maxTextChunk = 1 << 20

// PNG text keywords mapped onto overlay tags.
const (
	pngCreationTime = "Creation Time"
	pngTitle        = "Title"
	pngDescription  = "Description"
)

// ReadTags extracts the creation time and title embedded in a JPEG, TIFF or
// PNG stream. Unreadable or missing metadata yields empty tags.
func ReadTags(r io.Reader) overlay.Tags {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(pngSignature))
	if err == nil && bytes.Equal(head, pngSignature) {
		return readPNGTags(br)
	}

	var tags overlay.Tags
	x, err := exif.Decode(br)
	if err != nil {
		logDebug("no exif: %v", err)
		return tags
	}
	applyExif(x, &tags)
	return tags
}

func applyExif(x *exif.Exif, tags *overlay.Tags) {
	if v, ok := exifString(x, exif.DateTimeOriginal); ok {
		tags.DateTimeOriginal = v
	}
	if v, ok := exifString(x, exif.ImageDescription); ok {
		tags.Title = v
	}
}

func exifString(x *exif.Exif, field exif.FieldName) (string, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return "", false
	}
	v, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	v = strings.TrimSpace(strings.TrimRight(v, "\x00"))
	return v, v != ""
}

// readPNGTags walks the chunk list after the signature, collecting text
// chunks and an eXIf block until IEND.
func readPNGTags(r *bufio.Reader) overlay.Tags {
	var tags overlay.Tags
	if _, err := r.Discard(len(pngSignature)); err != nil {
		return tags
	}

	text := make(map[string]string)
	var header [8]byte
	for {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			break
		}
		length := binary.BigEndian.Uint32(header[:4])
		kind := string(header[4:8])
		if kind == "IEND" {
			break
		}

		switch kind {
		case "tEXt", "zTXt", "iTXt", "eXIf":
			if length > maxTextChunk {
				logDebug("png: skipping %s chunk of %d bytes", kind, length)
				return finishPNGTags(tags, text)
			}
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return finishPNGTags(tags, text)
			}
			if kind == "eXIf" {
				if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
					applyExif(x, &tags)
				} else {
					logDebug("png: bad eXIf chunk: %v", err)
				}
			} else if key, value, ok := parseTextChunk(kind, data); ok {
				text[key] = value
			}
		default:
			if _, err := r.Discard(int(length)); err != nil {
				return finishPNGTags(tags, text)
			}
		}

		if _, err := r.Discard(4); err != nil {
			break
		}
	}
	return finishPNGTags(tags, text)
}

func finishPNGTags(tags overlay.Tags, text map[string]string) overlay.Tags {
	if v := text[pngCreationTime]; v != "" {
		tags.CreationTime = v
	}
	if tags.Title == "" {
		if v := text[pngTitle]; v != "" {
			tags.Title = v
		} else {
			tags.Title = text[pngDescription]
		}
	}
	return tags
}

// parseTextChunk decodes the keyword and value of a tEXt, zTXt or iTXt chunk.
func parseTextChunk(kind string, data []byte) (string, string, bool) {
	key, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return "", "", false
	}

	switch kind {
	case "tEXt":
		return string(key), latin1(rest), true
	case "zTXt":
		if len(rest) < 1 {
			return "", "", false
		}
		value, err := inflate(rest[1:])
		if err != nil {
			return "", "", false
		}
		return string(key), latin1(value), true
	case "iTXt":
		if len(rest) < 2 {
			return "", "", false
		}
		compressed := rest[0] == 1
		rest = rest[2:]
		// Language tag, then the translated keyword.
		for i := 0; i < 2; i++ {
			var found bool
			_, rest, found = bytes.Cut(rest, []byte{0})
			if !found {
				return "", "", false
			}
		}
		if compressed {
			value, err := inflate(rest)
			if err != nil {
				return "", "", false
			}
			rest = value
		}
		return string(key), string(rest), true
	}
	return "", "", false
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, maxTextChunk))
}

func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
