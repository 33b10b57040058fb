package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
)

// Transcriber turns a recorded audio file into text in the target language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, targetLanguage string) (string, error)
}

// ScriptTranscriber shells out to the speech-to-text script:
//
//	<python> <script> <audioPath> <targetLanguage>
//
// stdout is the transcript. The run is bounded by a timeout; any failure
// surfaces as a TranscriptionError and the caller decides whether the
// message can still go out without a translation.
type ScriptTranscriber struct {
	python  string
	script  string
	timeout time.Duration
}

func NewScriptTranscriber(python, script string, timeout time.Duration) *ScriptTranscriber {
	return &ScriptTranscriber{python: python, script: script, timeout: timeout}
}

func (t *ScriptTranscriber) Transcribe(ctx context.Context, audioPath, targetLanguage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.python, t.script, audioPath, targetLanguage)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &apperrors.TranscriptionError{Err: fmt.Errorf("timed out after %s", t.timeout)}
		}
		return "", &apperrors.TranscriptionError{Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))}
	}
	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", &apperrors.TranscriptionError{Err: fmt.Errorf("empty transcript")}
	}
	return text, nil
}
