package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/figlens/internal/figmaapi"
	"github.com/leapstack-labs/figlens/pkg/figma"
)

// Bitmap is a rendered image of the root node as fetched, before decoding.
type Bitmap struct {
	Data   []byte
	Format string // png, jpg or svg
}

// Source supplies a design tree and its rendered bitmap. The two fetches are
// independent and are issued in parallel.
type Source interface {
	FetchDocument(ctx context.Context) (*figma.Node, error)
	FetchBitmap(ctx context.Context) (Bitmap, error)
	String() string
}

// RemoteSource fetches from the design-file API by share URL.
type RemoteSource struct {
	Client *figmaapi.Client
	URL    string
	Format string
}

func (s *RemoteSource) locator() (figmaapi.Locator, error) {
	loc, err := figmaapi.ParseLocator(s.URL)
	if err != nil {
		return figmaapi.Locator{}, fmt.Errorf("%q: %w", s.URL, err)
	}
	return loc, nil
}

// FetchDocument implements Source.
func (s *RemoteSource) FetchDocument(ctx context.Context) (*figma.Node, error) {
	loc, err := s.locator()
	if err != nil {
		return nil, err
	}
	return s.Client.Document(ctx, loc.FileKey, loc.NodeID)
}

// FetchBitmap implements Source.
func (s *RemoteSource) FetchBitmap(ctx context.Context) (Bitmap, error) {
	loc, err := s.locator()
	if err != nil {
		return Bitmap{}, err
	}
	format := s.Format
	if format == "" {
		format = "png"
	}
	u, err := s.Client.ImageURL(ctx, loc.FileKey, loc.NodeID, format)
	if err != nil {
		return Bitmap{}, err
	}
	data, err := s.Client.Download(ctx, u)
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Data: data, Format: format}, nil
}

func (s *RemoteSource) String() string { return s.URL }

// FileSource reads a document and bitmap from disk. The document may be a
// bare node or a saved /v1/files/{key}/nodes response with a single entry.
type FileSource struct {
	DocumentPath string
	ImagePath    string
}

// FetchDocument implements Source.
func (s *FileSource) FetchDocument(ctx context.Context) (*figma.Node, error) {
	data, err := readFile(ctx, s.DocumentPath)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

// FetchBitmap implements Source.
func (s *FileSource) FetchBitmap(ctx context.Context) (Bitmap, error) {
	data, err := readFile(ctx, s.ImagePath)
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Data: data, Format: FormatFromPath(s.ImagePath)}, nil
}

func (s *FileSource) String() string { return s.DocumentPath }

// Paths returns the files the source reads, for change watching.
func (s *FileSource) Paths() []string {
	return []string{s.DocumentPath, s.ImagePath}
}

// StaticSource serves an already loaded document and bitmap, such as a
// stored snapshot.
type StaticSource struct {
	Name     string
	Document *figma.Node
	Bitmap   Bitmap
}

// FetchDocument implements Source.
func (s *StaticSource) FetchDocument(context.Context) (*figma.Node, error) {
	if s.Document == nil {
		return nil, fmt.Errorf("%s: no document", s.Name)
	}
	return s.Document, nil
}

// FetchBitmap implements Source.
func (s *StaticSource) FetchBitmap(context.Context) (Bitmap, error) {
	return s.Bitmap, nil
}

func (s *StaticSource) String() string { return s.Name }

// DecodeDocument accepts a bare node or a nodes response holding one node.
func DecodeDocument(data []byte) (*figma.Node, error) {
	var envelope struct {
		Nodes map[string]*struct {
			Document json.RawMessage `json:"document"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Nodes) > 0 {
		if len(envelope.Nodes) > 1 {
			return nil, fmt.Errorf("failed to decode document: response holds %d nodes, expected 1", len(envelope.Nodes))
		}
		for _, entry := range envelope.Nodes {
			if entry == nil || len(entry.Document) == 0 {
				return nil, fmt.Errorf("failed to decode document: empty node entry")
			}
			data = entry.Document
		}
	}
	return figma.ParseDocument(data)
}

// FormatFromPath guesses a bitmap format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg"
	case ".jpg", ".jpeg":
		return "jpg"
	default:
		return "png"
	}
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
