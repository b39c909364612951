package webapi

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/metrics"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/goccy/go-json"
)

const (
	labelDetectorSource = "label_detector"

	// time allowed for the output pipes to close after the script is killed
	_detectorWaitDelay = 500 * time.Millisecond
)

// LabelDetectorWebAPI runs the vision label detection script as
// `<interpreter> <script> <apiKey> <imageURL>` and returns its stdout.
type LabelDetectorWebAPI struct {
	interpreter string
	script      string
	apiKey      string
	timeout     time.Duration
}

func NewLabelDetectorWebAPI(interpreter, script, apiKey string, timeout time.Duration) *LabelDetectorWebAPI {
	return &LabelDetectorWebAPI{
		interpreter: interpreter,
		script:      script,
		apiKey:      apiKey,
		timeout:     timeout,
	}
}

func (d *LabelDetectorWebAPI) Detect(ctx context.Context, imageURL string) ([]byte, error) {
	out, err := d.run(ctx, imageURL)
	metrics.ObserveUpstream(labelDetectorSource, err)
	if err != nil {
		return nil, fmt.Errorf("LabelDetectorWebAPI - Detect: %w", err)
	}

	return out, nil
}

func (d *LabelDetectorWebAPI) run(ctx context.Context, imageURL string) ([]byte, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, d.interpreter, d.script, d.apiKey, imageURL)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = _detectorWaitDelay
	killProcessGroup(cmd)

	err := cmd.Run()
	if err != nil {
		return nil, fmt.Errorf("cmd.Run: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if !json.Valid(out) {
		return nil, fmt.Errorf("json.Valid: %w", errs.ErrDetectorOutput)
	}

	return out, nil
}
