package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/niyarrbarman/automanim/internal/codeutil"
	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/model"
	"github.com/niyarrbarman/automanim/pkg/logger"
)

const (
	scriptName        = "scene.py"
	manimCfgName      = "manim.cfg"
	manimCfgEnvVar    = "MANIM_CONFIG_FILE"
	defaultScene      = "GeneratedScene"
	importBoilerplate = "from manim import *\n\n"

	rendererMissingMsg = "manim not found. Please install manim in the backend environment (or ensure 'python -m manim' works)."
)

// qualityFlags maps quality tiers onto manim's single-character -q presets.
// Unknown tiers fall back to low.
var qualityFlags = map[string]string{
	model.QualityLow:    "l",
	model.QualityMedium: "m",
	model.QualityHigh:   "h",
	model.QualityUltra:  "k",
}

// RenderResult reports one renderer invocation. VideoURL is set only on
// success and is relative to the public media root. Log carries the merged
// stdout+stderr of the renderer, kept on failure for inspection.
type RenderResult struct {
	Success  bool
	VideoURL string
	Log      string
}

// RenderService drives the external manim renderer. Each session gets an
// isolated working directory and an output directory under the media root;
// neither is cleaned up, so scripts and logs survive for debugging.
type RenderService struct {
	mediaRoot string
	workRoot  string
	timeout   time.Duration

	// replaced in tests to point at a mock renderer
	lookPath func(string) (string, error)
}

func NewRenderService(cfg *config.Config) (*RenderService, error) {
	s := &RenderService{
		mediaRoot: cfg.Render.MediaRoot,
		workRoot:  cfg.Render.WorkRoot,
		timeout:   cfg.Render.Timeout,
		lookPath:  exec.LookPath,
	}

	for _, dir := range []string{s.mediaRoot, s.workRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return s, nil
}

// Render writes the code into the session's working directory and invokes the
// renderer on it. sceneClass may be empty, in which case it is extracted from
// the code, falling back to the default scene name. A nil settings uses the
// documented defaults. preview selects the output filename convention so
// preview and final renders never collide.
func (s *RenderService) Render(ctx context.Context, sessionID, code, sceneClass string, settings *model.VideoSettings, preview bool) RenderResult {
	jobID := uuid.NewString()

	workDir := filepath.Join(s.workRoot, sessionID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return RenderResult{Log: fmt.Sprintf("failed to create working directory: %v", err)}
	}

	if !strings.Contains(code, "from manim import") {
		code = importBoilerplate + code
	}

	scriptPath := filepath.Join(workDir, scriptName)
	if err := os.WriteFile(scriptPath, []byte(code), 0o644); err != nil {
		return RenderResult{Log: fmt.Sprintf("failed to write scene script: %v", err)}
	}

	if sceneClass == "" {
		if sceneClass = codeutil.ExtractSceneClass(code); sceneClass == "" {
			sceneClass = defaultScene
		}
	}

	outName := "output.mp4"
	if preview {
		outName = "preview.mp4"
	}
	outDir := filepath.Join(s.mediaRoot, sessionID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return RenderResult{Log: fmt.Sprintf("failed to create output directory: %v", err)}
	}

	if settings == nil {
		defaults := model.DefaultVideoSettings()
		settings = &defaults
	}
	quality, ok := qualityFlags[strings.ToLower(settings.Quality)]
	if !ok {
		quality = qualityFlags[model.QualityLow]
	}

	// The -q preset and the exact pixel dimensions are independent knobs on
	// the manim side: the preset picks a coarse resolution class, while the
	// cfg file pins the exact width/height. Both are needed.
	cfgPath := filepath.Join(workDir, manimCfgName)
	manimCfg := fmt.Sprintf("[CLI]\npixel_height = %d\npixel_width = %d\nframe_rate = %d\n",
		settings.ResolutionHeight, settings.ResolutionWidth, settings.FPS)
	if err := os.WriteFile(cfgPath, []byte(manimCfg), 0o644); err != nil {
		return RenderResult{Log: fmt.Sprintf("failed to write renderer config: %v", err)}
	}

	argv, err := s.rendererCommand()
	if err != nil {
		return RenderResult{Log: rendererMissingMsg}
	}

	args := append(argv[1:],
		"-q", quality,
		"--fps", strconv.Itoa(settings.FPS),
		"--format", "mp4",
		"--custom_folders",
		"--media_dir", outDir,
		"--disable_caching",
		scriptPath,
		sceneClass,
		"-o", outName,
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), manimCfgEnvVar+"="+cfgPath)

	logger.Infof("render %s: session=%s scene=%s quality=%s preview=%v", jobID, sessionID, sceneClass, quality, preview)

	out, err := cmd.CombinedOutput()
	logText := string(out)
	if err != nil {
		if logText == "" {
			logText = err.Error()
		}
		logger.Warnf("render %s failed: %v", jobID, err)
		return RenderResult{Log: logText}
	}

	logger.Infof("render %s finished: %s/%s", jobID, sessionID, outName)
	return RenderResult{
		Success:  true,
		VideoURL: "/media/" + sessionID + "/" + outName,
		Log:      logText,
	}
}

// rendererCommand resolves the renderer entry point: the manim binary on PATH
// when present, otherwise the interpreter-module form.
func (s *RenderService) rendererCommand() ([]string, error) {
	if path, err := s.lookPath("manim"); err == nil {
		return []string{path}, nil
	}
	for _, python := range []string{"python3", "python"} {
		if path, err := s.lookPath(python); err == nil {
			return []string{path, "-m", "manim"}, nil
		}
	}
	return nil, fmt.Errorf("renderer executable not found")
}

// ListMedia enumerates rendered videos under the media root, sorted by path.
func (s *RenderService) ListMedia() ([]model.MediaItem, error) {
	var items []model.MediaItem
	err := filepath.WalkDir(s.mediaRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".mp4") {
			return nil
		}
		rel, err := filepath.Rel(s.mediaRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		items = append(items, model.MediaItem{Name: rel, URL: "/media/" + rel})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
