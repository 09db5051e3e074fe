package expiry

import (
	"errors"
	"image"
	"testing"
	"time"
)

type stubRecognizer struct {
	text   string
	err    error
	called bool
}

func (s *stubRecognizer) Recognize(image.Image) (string, error) {
	s.called = true
	return s.text, s.err
}

func TestExtractFromImagePipeline(t *testing.T) {
	rec := &stubRecognizer{text: "BEST BEFORE 01/02/2030"}
	res, err := ExtractFromImage(labelPNG(t), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Confidence != ConfidenceHigh {
		t.Fatalf("expected high-confidence success got %+v", res)
	}
	want := time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC)
	if res.Date == nil || !res.Date.Equal(want) {
		t.Fatalf("expected 2030-02-01 got %v", res.Date)
	}
}

func TestRecognizerFaultDegradesToFailedResult(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("backend down")}
	res, err := ExtractFromImage(labelPNG(t), rec)
	if err != nil {
		t.Fatalf("recognizer faults must not propagate as errors, got %v", err)
	}
	if res.Success || res.Confidence != ConfidenceLow {
		t.Fatalf("expected failed low-confidence result got %+v", res)
	}
}

func TestDecodeFailureHappensBeforeRecognition(t *testing.T) {
	rec := &stubRecognizer{text: "EXP 01/02/2030"}
	_, err := ExtractFromImage([]byte("garbage"), rec)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode got %v", err)
	}
	if rec.called {
		t.Fatal("recognizer must not run when decode fails")
	}
}
