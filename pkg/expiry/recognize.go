package expiry

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Recognizer turns an OCR-ready bitmap into text. It is the external
// capability boundary: timeout and cancellation policy belong to the caller.
type Recognizer interface {
	Recognize(bitmap image.Image) (string, error)
}

// TesseractRecognizer runs gosseract over a temp-PNG handoff.
type TesseractRecognizer struct{}

func (TesseractRecognizer) Recognize(bitmap image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "expiry-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := imaging.Save(bitmap, tmp); err != nil {
		return "", fmt.Errorf("save bitmap: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	client.SetImage(tmp)
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	return text, nil
}

// ExtractFromImage runs the full pipeline: preprocess, recognize, extract.
// Undecodable bytes surface ErrDecode before any recognition attempt. A
// recognizer fault degrades to a failed low-confidence result instead of an
// error, so callers always get a well-formed answer and can fall back to
// manual entry.
func ExtractFromImage(imageBytes []byte, rec Recognizer) (ExtractionResult, error) {
	bitmap, err := Preprocess(imageBytes)
	if err != nil {
		return ExtractionResult{}, err
	}
	text, err := rec.Recognize(bitmap)
	if err != nil {
		log.Printf("expiry: recognition failed: %v", err)
		return ExtractionResult{Success: false, Confidence: ConfidenceLow}, nil
	}
	return ExtractExpiryDate(text), nil
}
