package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	// Register the decoders for the two image formats renderers emit.
	_ "image/jpeg"
	_ "image/png"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// slideImage is one page image staged for the deck.
type slideImage struct {
	data []byte
	ext  string // "png" or "jpeg", matching the content-type defaults
}

// Builder accumulates page images and writes them out as a .pptx deck.
// Images become slides in the order they are added.
type Builder struct {
	title  string
	ratio  model.AspectRatio
	images []slideImage
	now    func() time.Time
}

// NewBuilder creates a deck builder. The title lands in the document
// properties; the ratio determines the slide dimensions.
func NewBuilder(title string, ratio model.AspectRatio) *Builder {
	return &Builder{
		title: title,
		ratio: ratio,
		now:   time.Now,
	}
}

// AddImageFile appends one page image as the next slide. The format is
// sniffed from the file content, not the extension; only PNG and JPEG
// are accepted since those are what the renderers produce.
func (b *Builder) AddImageFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read page image %s: %w", path, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode page image %s: %w", path, err)
	}
	if format != "png" && format != "jpeg" {
		return fmt.Errorf("unsupported page image format %q in %s (want png or jpeg)", format, path)
	}

	b.images = append(b.images, slideImage{data: data, ext: format})
	return nil
}

// SlideCount returns the number of slides added so far.
func (b *Builder) SlideCount() int {
	return len(b.images)
}

// Write assembles the deck and writes the complete .pptx to w.
func (b *Builder) Write(w io.Writer) error {
	if len(b.images) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML(len(b.images))},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(b.title, b.now())},
		{"docProps/app.xml", appPropsXML(len(b.images), b.ratio)},
		{"ppt/presentation.xml", presentationXML(len(b.images), b.ratio)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(len(b.images))},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/viewProps.xml", viewPropsXML()},
		{"ppt/tableStyles.xml", tableStylesXML()},
		{"ppt/theme/theme1.xml", themeXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
	}
	for _, p := range parts {
		if err := writeZipString(zw, p.name, p.content); err != nil {
			zw.Close()
			return err
		}
	}

	for i, img := range b.images {
		n := i + 1
		if err := writeZipString(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(n, b.ratio)); err != nil {
			zw.Close()
			return err
		}
		if err := writeZipString(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(n, img.ext)); err != nil {
			zw.Close()
			return err
		}
		if err := writeZipBytes(zw, fmt.Sprintf("ppt/media/image%d.%s", n, img.ext), img.data); err != nil {
			zw.Close()
			return err
		}
	}

	return zw.Close()
}

// WriteFile writes the deck to a file, replacing any existing file.
func (b *Builder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	if err := b.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// BuildFile assembles a deck from the given page images and writes it
// to outPath. This is the one-call form the conversion pipeline uses.
func BuildFile(outPath, title string, ratio model.AspectRatio, imagePaths []string) (int, error) {
	b := NewBuilder(title, ratio)
	for _, p := range imagePaths {
		if err := b.AddImageFile(p); err != nil {
			return 0, err
		}
	}
	if err := b.WriteFile(outPath); err != nil {
		return 0, err
	}
	return b.SlideCount(), nil
}

func writeZipString(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", name, err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", name, err)
	}
	return nil
}

func writeZipBytes(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", name, err)
	}
	return nil
}
