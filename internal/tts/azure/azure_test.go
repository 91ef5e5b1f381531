package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/nadzzz/duocast/internal/config"
	"github.com/nadzzz/duocast/internal/ssml"
	"github.com/nadzzz/duocast/internal/tts"
)

const doc = ssml.Document(`<speak version="1.0"></speak>`)

type fakeCredential struct {
	token string
	err   error
}

func (f fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: f.token, ExpiresOn: time.Now().Add(time.Hour)}, f.err
}

func newTestSynth(t *testing.T, h http.HandlerFunc, cfg config.SpeechConfig, opts ...Option) *Synthesizer {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg.Endpoint = srv.URL
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSynthesizeSuccess(t *testing.T) {
	wav := tts.PCMToWAV(make([]byte, 960), 48000, 1, 2)

	var gotBody string
	s := newTestSynth(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("X-Microsoft-OutputFormat"); got != OutputFormat {
			t.Errorf("output format = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/ssml+xml" {
			t.Errorf("content type = %q", got)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "k" {
			t.Errorf("key = %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(wav)
	}, config.SpeechConfig{Key: "k"})

	res, err := s.Synthesize(context.Background(), doc)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if gotBody != doc.String() {
		t.Errorf("body = %q", gotBody)
	}
	if res.SampleRate != 48000 || res.Channels != 1 || res.BitsPerSample != 16 {
		t.Errorf("format = %+v", res)
	}
	if res.ContentType != "audio/wav" || len(res.Audio) != len(wav) {
		t.Errorf("result = %s, %d bytes", res.ContentType, len(res.Audio))
	}
}

func TestSynthesizeTokenAuth(t *testing.T) {
	wav := tts.PCMToWAV(make([]byte, 2), 48000, 1, 2)
	s := newTestSynth(t, func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.Header.Get("Authorization"), "Bearer aad#/sub/res#tok"; got != want {
			t.Errorf("authorization = %q, want %q", got, want)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "" {
			t.Error("subscription key sent with token auth")
		}
		_, _ = w.Write(wav)
	}, config.SpeechConfig{ResourceID: "/sub/res"}, WithCredential(fakeCredential{token: "tok"}))

	if _, err := s.Synthesize(context.Background(), doc); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
}

func TestSynthesizeTokenFailure(t *testing.T) {
	s := newTestSynth(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent without a token")
	}, config.SpeechConfig{ResourceID: "/sub/res"}, WithCredential(fakeCredential{err: errors.New("no identity")}))

	_, err := s.Synthesize(context.Background(), doc)
	var ce *tts.CanceledError
	if !errors.As(err, &ce) || ce.Reason != tts.ReasonError {
		t.Fatalf("err = %v, want CanceledError(Error)", err)
	}
}

func TestSynthesizeFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       []byte
		wantCancel bool
		wantDetail string
	}{
		{"bad request", http.StatusBadRequest, []byte("invalid ssml"), true, "status 400: invalid ssml"},
		{"unauthorized", http.StatusUnauthorized, nil, true, "status 401"},
		{"throttled", http.StatusTooManyRequests, nil, true, "status 429"},
		{"server error", http.StatusBadGateway, nil, true, "status 502"},
		{"unexpected status", http.StatusAccepted, nil, false, "status 202"},
		{"not audio", http.StatusOK, []byte("<html></html>"), false, "unexpected audio payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynth(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write(tt.body)
			}, config.SpeechConfig{Key: "k"})

			_, err := s.Synthesize(context.Background(), doc)
			if err == nil {
				t.Fatal("Synthesize succeeded")
			}
			var ce *tts.CanceledError
			var ue *tts.UnknownReasonError
			switch {
			case tt.wantCancel:
				if !errors.As(err, &ce) || ce.Reason != tts.ReasonError {
					t.Fatalf("err = %T %v, want CanceledError", err, err)
				}
				if ce.Details != tt.wantDetail {
					t.Errorf("details = %q, want %q", ce.Details, tt.wantDetail)
				}
			default:
				if !errors.As(err, &ue) {
					t.Fatalf("err = %T %v, want UnknownReasonError", err, err)
				}
				if !strings.Contains(ue.Reason, tt.wantDetail) {
					t.Errorf("reason = %q, want %q", ue.Reason, tt.wantDetail)
				}
			}
		})
	}
}

func TestSynthesizeCanceledContext(t *testing.T) {
	s := newTestSynth(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, config.SpeechConfig{Key: "k"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Synthesize(ctx, doc)
	var ce *tts.CanceledError
	if !errors.As(err, &ce) || ce.Reason != tts.ReasonCancelledByUser {
		t.Fatalf("err = %v, want CanceledError(CancelledByUser)", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(config.SpeechConfig{Key: "k"}); err == nil {
		t.Error("New without region succeeded")
	}
	if _, err := New(config.SpeechConfig{Region: "eastus"}); err == nil {
		t.Error("New without credentials succeeded")
	}
	if _, err := New(config.SpeechConfig{Region: "eastus", ResourceID: "/x"}); err == nil {
		t.Error("New with resource ID but no credential succeeded")
	}

	s, err := New(config.SpeechConfig{Region: "eastus", Key: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://eastus.tts.speech.microsoft.com/cognitiveservices/v1"; s.endpoint != want {
		t.Errorf("endpoint = %q, want %q", s.endpoint, want)
	}
}
