package pdf

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/gen2brain/go-fitz"
)

var ErrRegistry = errx.NewRegistry("PDF")

var (
	CodeUnreadable  = ErrRegistry.Register("UNREADABLE", errx.TypeValidation, http.StatusBadRequest, "File is not a readable PDF")
	CodeNoPages     = ErrRegistry.Register("NO_PAGES", errx.TypeValidation, http.StatusBadRequest, "PDF has no pages")
	CodeBadImage    = ErrRegistry.Register("BAD_IMAGE", errx.TypeValidation, http.StatusBadRequest, "File is not a supported image")
	CodeRenderError = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not render PDF")
)

const jpegQuality = 90

// Info describes an opened PDF
type Info struct {
	Pages  int
	Title  string
	Author string
}

// IsPDF reports whether data starts with the PDF signature
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// Inspect opens a PDF and reports its page count and metadata. A document
// without pages is an error.
func Inspect(data []byte) (*Info, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeUnreadable, err)
	}
	defer doc.Close()

	info := &Info{Pages: doc.NumPage()}
	if meta := doc.Metadata(); meta != nil {
		info.Title = meta["title"]
		info.Author = meta["author"]
	}
	if info.Pages < 1 {
		return info, ErrRegistry.New(CodeNoPages)
	}
	return info, nil
}

// ExtractText returns the text of every page joined by blank lines
func ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeUnreadable, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", ErrRegistry.NewWithCause(CodeRenderError, err).WithDetail("page", i)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.TrimSpace(text))
	}
	return sb.String(), nil
}

// RenderPages renders up to max pages (all when max <= 0) as JPEG images
func RenderPages(data []byte, max int) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeUnreadable, err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if max > 0 && count > max {
		count = max
	}

	images := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, ErrRegistry.NewWithCause(CodeRenderError, err).WithDetail("page", i)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, ErrRegistry.NewWithCause(CodeRenderError, err).WithDetail("page", i)
		}
		images = append(images, buf.Bytes())
	}
	return images, nil
}

// DetectImageFormat returns "jpeg", "png" or "gif" for image data
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeBadImage, err)
	}
	return format, nil
}

// ConvertImageToJPEG re-encodes any supported image as JPEG. JPEG input is
// returned unchanged.
func ConvertImageToJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeBadImage, err)
	}
	if format == "jpeg" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeBadImage, err)
	}
	return buf.Bytes(), nil
}
