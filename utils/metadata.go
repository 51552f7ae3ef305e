package utils

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata is the optional bundle of EXIF-style fields attached to an
// image record. All fields are nullable; absent tags stay nil.
type Metadata struct {
	Width        *int     `json:"width,omitempty"` // get from DecodeConfig usually
	Height       *int     `json:"height,omitempty"`
	CameraMake   *string  `json:"camera_make,omitempty"`
	CameraModel  *string  `json:"camera_model,omitempty"`
	DateTaken    *int64   `json:"date_taken,omitempty"` // Unix timestamp
	FocalLength  *float64 `json:"focal_length,omitempty"`
	ExposureTime *string  `json:"exposure_time,omitempty"`
	Aperture     *float64 `json:"aperture,omitempty"`
	ISOSpeed     *int     `json:"iso_speed,omitempty"`
	GPSLatitude  *float64 `json:"gps_latitude,omitempty"`
	GPSLongitude *float64 `json:"gps_longitude,omitempty"`
	FileSize     *int64   `json:"file_size,omitempty"`
	FileType     *string  `json:"file_type,omitempty"`
}

// ToJSON serializes the bundle for the images.metadata_json column.
func (m *Metadata) ToJSON() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("metadata: failed to marshal bundle: %w", err)
	}
	return string(data), nil
}

// helper to safely get and convert a rational tag (like Aperture, FocalLength)
func getRational(exifData *exif.Exif, tagName exif.FieldName) *float64 {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil // Tag not found
	}
	// rational numbers are often stored as num/den
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		// sometimes stored as Int instead
		valInt, errInt := tag.Int(0)
		if errInt == nil {
			fVal := float64(valInt)
			return &fVal
		}
		return nil
	}
	val := float64(num) / float64(den)
	return &val
}

// helper to safely get and convert an integer tag (like ISO)
func getInt(exifData *exif.Exif, tagName exif.FieldName) *int {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	// ISO might be a slice, get the first value
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// helper to safely get a string tag, trimming null terminators
func getString(exifData *exif.Exif, tagName exif.FieldName) *string {
	tag, err := exifData.Get(tagName)
	if err != nil || tag == nil {
		return nil
	}
	// val string might have null chars at the end
	val := strings.Trim(strings.TrimRight(tag.String(), "\x00"), `"`)
	if val == "" {
		return nil
	}
	return &val
}

// helper to get the exposure time, formatted as a fraction where possible
func getExposureTime(exifData *exif.Exif) *string {
	tag, err := exifData.Get(exif.ExposureTime)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil // Cannot represent as fraction
	}

	if num == 1 && den > 1 { // common case: 1/XXX
		s := fmt.Sprintf("1/%d", den)
		return &s
	}

	val := float64(num) / float64(den)
	if val >= 1.0 {
		s := fmt.Sprintf("%.1fs", val) // e.g., 1.5s, 30.0s
		return &s
	}
	s := fmt.Sprintf("%.4fs", val) // use float representation if not simple fraction
	return &s
}

// GetImageMetadata extracts the metadata bundle for an image file using
// goexif plus a stdlib dimension decode. Files without EXIF data still
// yield dimensions, file size, and file type.
func GetImageMetadata(filePath string) (*Metadata, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("metadata: failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	meta := &Metadata{}

	if info, err := file.Stat(); err == nil {
		size := info.Size()
		meta.FileSize = &size
	}

	config, format, err := image.DecodeConfig(file)
	if err == nil {
		w, h := config.Width, config.Height
		meta.Width = &w
		meta.Height = &h
		meta.FileType = &format
	} else {
		log.Printf("metadata: Warning - Could not decode config for dimensions of %s: %v", filePath, err)
		// fall back to the extension for the file type
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
		if ext != "" {
			meta.FileType = &ext
		}
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		return nil, fmt.Errorf("metadata: failed to seek file %s: %w", filePath, err)
	}

	exifData, err := exif.Decode(file)
	if err != nil {
		// not necessarily a fatal error, file might just lack EXIF data
		return meta, nil
	}

	meta.Aperture = getRational(exifData, exif.FNumber)
	meta.ExposureTime = getExposureTime(exifData)
	meta.ISOSpeed = getInt(exifData, exif.ISOSpeedRatings)
	meta.FocalLength = getRational(exifData, exif.FocalLength)
	meta.CameraMake = getString(exifData, exif.Make)
	meta.CameraModel = getString(exifData, exif.Model)

	if dt, err := exifData.DateTime(); err == nil {
		ts := dt.Unix()
		meta.DateTaken = &ts
	}

	if lat, long, err := exifData.LatLong(); err == nil {
		meta.GPSLatitude = &lat
		meta.GPSLongitude = &long
	}

	return meta, nil
}
