package builder

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// File format constants.
const (
	NAVMESH_FILE_MAGIC   = 0x4E41564D // "NAVM"
	NAVMESH_FILE_VERSION = 1
)

// FileHeader is the nav mesh file header.
type FileHeader struct {
	Magic   uint32
	Version uint32
}

var useGzip = true

// UseGzip toggles gzip compression for saved files.
func UseGzip(use bool) {
	useGzip = use
}

// Save writes the mesh data to a file.
func Save(data *NavMeshData, filename string) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid nav mesh data: %v", err)
	}

	buf := bytes.NewBuffer(nil)

	header := FileHeader{
		Magic:   NAVMESH_FILE_MAGIC,
		Version: NAVMESH_FILE_VERSION,
	}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	// write agent and cell parameters
	params := []float32{
		data.WalkableHeight,
		data.WalkableRadius,
		data.WalkableClimb,
		data.CellSize,
		data.CellHeight,
	}
	if err := binary.Write(buf, binary.LittleEndian, params); err != nil {
		return fmt.Errorf("failed to write parameters: %v", err)
	}

	// write vertex count
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data.Vertices))); err != nil {
		return fmt.Errorf("failed to write vertex count: %v", err)
	}

	// write vertices
	if err := binary.Write(buf, binary.LittleEndian, data.Vertices); err != nil {
		return fmt.Errorf("failed to write vertices: %v", err)
	}

	// write index count
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data.Indices))); err != nil {
		return fmt.Errorf("failed to write index count: %v", err)
	}

	// write indices
	if err := binary.Write(buf, binary.LittleEndian, data.Indices); err != nil {
		return fmt.Errorf("failed to write indices: %v", err)
	}

	content := buf.Bytes()
	if useGzip {
		content = Compress(content)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %v", err)
	}
	return nil
}

// Load reads mesh data from a file.
func Load(filename string) (*NavMeshData, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	if useGzip {
		content = Decompress(content)
	}

	buf := bytes.NewBuffer(content)

	var header FileHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %v", err)
	}

	if header.Magic != NAVMESH_FILE_MAGIC {
		return nil, fmt.Errorf("invalid file format: magic number mismatch")
	}
	if header.Version != NAVMESH_FILE_VERSION {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	data := &NavMeshData{}

	params := make([]float32, 5)
	if err := binary.Read(buf, binary.LittleEndian, params); err != nil {
		return nil, fmt.Errorf("failed to read parameters: %v", err)
	}
	data.WalkableHeight = params[0]
	data.WalkableRadius = params[1]
	data.WalkableClimb = params[2]
	data.CellSize = params[3]
	data.CellHeight = params[4]

	var vertCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &vertCount); err != nil {
		return nil, fmt.Errorf("failed to read vertex count: %v", err)
	}

	data.Vertices = make([]float32, vertCount)
	if err := binary.Read(buf, binary.LittleEndian, data.Vertices); err != nil {
		return nil, fmt.Errorf("failed to read vertices: %v", err)
	}

	var indexCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &indexCount); err != nil {
		return nil, fmt.Errorf("failed to read index count: %v", err)
	}

	data.Indices = make([]uint16, indexCount)
	if err := binary.Read(buf, binary.LittleEndian, data.Indices); err != nil {
		return nil, fmt.Errorf("failed to read indices: %v", err)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid nav mesh data: %v", err)
	}
	return data, nil
}

// Compress gzips the content.
func Compress(content []byte) []byte {
	buf := bytes.NewBuffer(nil)
	gzipWriter := gzip.NewWriter(buf)
	gzipWriter.Write(content)
	gzipWriter.Close()
	return buf.Bytes()
}

// Decompress un-gzips the content.
func Decompress(content []byte) []byte {
	buf := bytes.NewBuffer(content)
	gzipReader, err := gzip.NewReader(buf)
	if err != nil {
		return nil
	}

	decompressed, err := io.ReadAll(gzipReader)
	if err != nil {
		return nil
	}
	return decompressed
}
