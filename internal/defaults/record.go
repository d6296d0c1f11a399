package defaults

import (
	"encoding/json"
	"fmt"
	"strings"

	"memmet/internal/geometry"
)

// FileType is an output container choice.
type FileType string

const (
	FileTypeMP4 FileType = "mp4"
	FileTypeMOV FileType = "mov"
	FileTypeMKV FileType = "mkv"
)

// DefaultFileType is used when neither the call site nor the record names one.
const DefaultFileType = FileTypeMP4

// FileTypes lists the supported output containers.
func FileTypes() []FileType {
	return []FileType{FileTypeMP4, FileTypeMOV, FileTypeMKV}
}

// ParseFileType accepts mp4, mov or mkv with an optional leading dot.
func ParseFileType(value string) (FileType, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), ".")
	for _, ft := range FileTypes() {
		if cleaned == string(ft) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("file type %q is not one of mp4, mov, mkv", value)
}

// Extension returns the type with a leading dot.
func (f FileType) Extension() string {
	return "." + string(f)
}

func (f FileType) String() string { return string(f) }

// Set implements pflag.Value.
func (f *FileType) Set(value string) error {
	parsed, err := ParseFileType(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *FileType) Type() string { return "mp4|mov|mkv" }

// UnmarshalJSON rejects unknown containers.
func (f *FileType) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseFileType(text)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Record is the persisted set of defaults. A nil field is unset.
type Record struct {
	OutDir     *string          `json:"out_dir,omitempty"`
	Dimensions *geometry.Policy `json:"dimensions,omitempty"`
	NoAudio    *bool            `json:"no_audio,omitempty"`
	Overwrite  *bool            `json:"overwrite,omitempty"`
	FileType   *FileType        `json:"file_type,omitempty"`
}

// Merge copies every field set in update over r.
func (r *Record) Merge(update Record) {
	if update.OutDir != nil {
		v := *update.OutDir
		r.OutDir = &v
	}
	if update.Dimensions != nil {
		v := *update.Dimensions
		r.Dimensions = &v
	}
	if update.NoAudio != nil {
		v := *update.NoAudio
		r.NoAudio = &v
	}
	if update.Overwrite != nil {
		v := *update.Overwrite
		r.Overwrite = &v
	}
	if update.FileType != nil {
		v := *update.FileType
		r.FileType = &v
	}
}

// Empty reports whether no field is set.
func (r Record) Empty() bool {
	return r.OutDir == nil && r.Dimensions == nil && r.NoAudio == nil && r.Overwrite == nil && r.FileType == nil
}

// Ptr returns a pointer to v, for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
