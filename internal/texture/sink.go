package texture

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"mapgen/internal/meshing"

	"golang.org/x/image/bmp"
)

// Sink displays generated output.
type Sink interface {
	DrawTexture(img image.Image) error
	DrawMesh(m *meshing.MeshData, tex image.Image) error
}

// FileSink writes every draw to Dir: textures as BMP, meshes as Wavefront
// OBJ with a material that references the BMP texture.
type FileSink struct {
	Dir    string
	Prefix string

	mu  sync.Mutex
	seq int
}

// NewFileSink creates dir if needed.
func NewFileSink(dir, prefix string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &FileSink{Dir: dir, Prefix: prefix}, nil
}

func (s *FileSink) next(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s%s-%04d", s.Prefix, kind, s.seq)
}

// DrawTexture writes img as <prefix>texture-NNNN.bmp.
func (s *FileSink) DrawTexture(img image.Image) error {
	_, err := s.writeBMP(s.next("texture"), img)
	return err
}

// DrawMesh writes <prefix>mesh-NNNN.obj/.mtl/.bmp.
func (s *FileSink) DrawMesh(m *meshing.MeshData, tex image.Image) error {
	base := s.next("mesh")
	texName, err := s.writeBMP(base, tex)
	if err != nil {
		return err
	}
	if err := s.writeMaterial(base, texName); err != nil {
		return err
	}
	return s.writeOBJ(base, m)
}

func (s *FileSink) writeBMP(base string, img image.Image) (string, error) {
	name := base + ".bmp"
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create texture: %w", err)
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return name, f.Close()
}

func (s *FileSink) writeMaterial(base, texName string) error {
	data := fmt.Sprintf("newmtl terrain\nKd 1 1 1\nmap_Kd %s\n", texName)
	if err := os.WriteFile(filepath.Join(s.Dir, base+".mtl"), []byte(data), 0o644); err != nil {
		return fmt.Errorf("write material: %w", err)
	}
	return nil
}

func (s *FileSink) writeOBJ(base string, m *meshing.MeshData) error {
	f, err := os.Create(filepath.Join(s.Dir, base+".obj"))
	if err != nil {
		return fmt.Errorf("create mesh: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "mtllib %s.mtl\nusemtl terrain\n", base)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.X(), v.Y(), v.Z())
	}
	for _, uv := range m.UVs {
		// OBJ texture space has v pointing up
		fmt.Fprintf(w, "vt %g %g\n", uv.X(), 1-uv.Y())
	}
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i]+1, m.Triangles[i+1]+1, m.Triangles[i+2]+1
		fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}
	return f.Close()
}
