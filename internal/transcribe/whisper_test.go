package transcribe

import (
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePCM16WAVHeader(t *testing.T) {
	samples := []int16{1, -1, 32767, -32768}
	wav := encodePCM16WAV(samples, 16000)

	require.Len(t, wav, 44+len(samples)*2)
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "WAVE", string(wav[8:12]))
	require.Equal(t, "fmt ", string(wav[12:16]))
	require.Equal(t, "data", string(wav[36:40]))

	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))     // PCM
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))     // mono
	require.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28])) // rate
	require.Equal(t, uint32(32000), binary.LittleEndian.Uint32(wav[28:32])) // byte rate
	require.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))    // depth
	require.Equal(t, uint32(8), binary.LittleEndian.Uint32(wav[40:44]))     // data size

	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[44:46]))
	require.Equal(t, uint16(0xFFFF), binary.LittleEndian.Uint16(wav[46:48]))
}

func TestWhisperTranscribe(t *testing.T) {
	var gotAuth, gotModel string
	var gotWAV []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotWAV, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer server.Close()

	client := NewWhisper(WhisperConfig{APIKey: "test-key", BaseURL: server.URL})
	text, err := client.Transcribe(context.Background(), []int16{1, 2, 3, 4}, 16000)
	require.NoError(t, err)
	require.Equal(t, "hello world", text)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "whisper-1", gotModel)
	require.Equal(t, "RIFF", string(gotWAV[0:4]))
}

func TestWhisperTranscribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewWhisper(WhisperConfig{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.Transcribe(context.Background(), []int16{1}, 16000)
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestWhisperTranscribeRequiresKey(t *testing.T) {
	client := NewWhisper(WhisperConfig{})
	_, err := client.Transcribe(context.Background(), []int16{1}, 16000)
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestWhisperTranscribeRejectsBadRate(t *testing.T) {
	client := NewWhisper(WhisperConfig{APIKey: "test-key"})
	_, err := client.Transcribe(context.Background(), []int16{1}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample rate")
}

func TestWhisperLanguageField(t *testing.T) {
	var gotLanguage string
	var hadLanguage bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLanguage = r.FormValue("language")
		hadLanguage = len(r.MultipartForm.Value["language"]) > 0
		_, _ = w.Write([]byte(`{"text":"ok"}`))
	}))
	defer server.Close()

	client := NewWhisper(WhisperConfig{APIKey: "k", BaseURL: server.URL, Language: "en"})
	_, err := client.Transcribe(context.Background(), []int16{1}, 16000)
	require.NoError(t, err)
	require.True(t, hadLanguage)
	require.Equal(t, "en", gotLanguage)

	auto := NewWhisper(WhisperConfig{APIKey: "k", BaseURL: server.URL, Language: "auto"})
	_, err = auto.Transcribe(context.Background(), []int16{1}, 16000)
	require.NoError(t, err)
	require.False(t, hadLanguage)
}
