package pptxraster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
)

// SlideResult is the outcome of rasterizing a single slide.
type SlideResult struct {
	SlideNumber  int // 1-based
	Success      bool
	Width        int
	Height       int
	ImageData    []byte
	ErrorMessage string
}

// Result is the aggregate output of Render.
type Result struct {
	TotalSlides      int
	SuccessfulSlides int
	Slides           []SlideResult
}

// Render opens a .pptx file and rasterizes every slide, encoding each to
// opts.Format. Opening the archive is the only fatal failure mode: a single
// slide's render or encode failure is confined to that slide's SlideResult
// and every other slide is still attempted, matching the propagation policy
// of failing small and continuing.
func Render(path string, opts *RenderOptions) (*Result, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, &ArchiveError{Part: path, Err: err}
	}
	return renderPresentation(pres, opts)
}

// RenderReader is Render for an already-open archive (e.g. an in-memory
// upload) rather than a file path.
func RenderReader(r io.ReaderAt, size int64, opts *RenderOptions) (*Result, error) {
	pr := &PPTXReader{}
	pres, err := pr.ReadFromReader(r, size)
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}
	return renderPresentation(pres, opts)
}

func renderPresentation(pres *Presentation, opts *RenderOptions) (*Result, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	logger := NewLogger(opts.LogLevel)

	total := pres.GetSlideCount()
	result := &Result{TotalSlides: total, Slides: make([]SlideResult, total)}

	for i := 0; i < total; i++ {
		sr := SlideResult{SlideNumber: i + 1}

		img, err := pres.SlideToImage(i, opts)
		if err != nil {
			renderErr := &RenderError{SlideNumber: i + 1, Err: err}
			sr.ErrorMessage = renderErr.Error()
			logger.Error("%v", renderErr)
			result.Slides[i] = sr
			continue
		}

		data, err := encodeImageBytes(img, opts)
		if err != nil {
			renderErr := &RenderError{SlideNumber: i + 1, Err: &MediaDecodeError{Part: "output image", Err: err}}
			sr.ErrorMessage = renderErr.Error()
			logger.Error("%v", renderErr)
			result.Slides[i] = sr
			continue
		}

		bounds := img.Bounds()
		sr.Success = true
		sr.Width = bounds.Dx()
		sr.Height = bounds.Dy()
		sr.ImageData = data
		result.Slides[i] = sr
		result.SuccessfulSlides++
	}

	return result, nil
}

func encodeImageBytes(img image.Image, opts *RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
