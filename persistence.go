package depsync

import (
	"context"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/agentstation/depsync/pkg/constants"
	"github.com/agentstation/depsync/pkg/errors"
	"github.com/agentstation/depsync/pkg/logging"
)

// file is one source text read at the start of a pass.
type file struct {
	path string
	text string
	mode os.FileMode
}

// readFile reads path whole.
func readFile(ctx context.Context, fs afero.Fs, path string) (*file, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapIO("read", path, errors.NewNotFoundError("file", path))
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = constants.FilePermissions
	}
	logging.FromContext(logging.WithFile(ctx, path)).Debug().Int("bytes", len(data)).Msg("Read file")
	return &file{path: path, text: string(data), mode: mode}, nil
}

// write replaces the file contents with text.
func (f *file) write(fs afero.Fs, text string) error {
	if err := afero.WriteFile(fs, f.path, []byte(text), f.mode); err != nil {
		return errors.WrapIO("write", f.path, err)
	}
	return nil
}

// pendingWrite is a file together with the text it should hold.
type pendingWrite struct {
	file *file
	text string
}

// persist writes every pending file in order. When a write fails, files
// already written are restored to their original text so that no partial
// result remains.
func persist(ctx context.Context, fs afero.Fs, writes []pendingWrite) ([]string, error) {
	var written []string
	for i, w := range writes {
		if err := w.file.write(fs, w.text); err != nil {
			for _, done := range writes[:i] {
				if restoreErr := done.file.write(fs, done.file.text); restoreErr != nil {
					logging.FromContext(logging.WithFile(ctx, done.file.path)).Error().
						Err(restoreErr).
						Msg("Failed to restore file after write error")
				}
			}
			return nil, err
		}
		logging.FromContext(logging.WithFile(ctx, w.file.path)).Debug().Int("bytes", len(w.text)).Msg("Wrote file")
		written = append(written, w.file.path)
	}
	return written, nil
}

// validateTOML checks that text decodes as TOML.
func validateTOML(path, text string) error {
	var doc map[string]any
	err := toml.Unmarshal([]byte(text), &doc)
	if err == nil {
		return nil
	}

	wrapped := errors.WrapParse("toml", path, err)
	var perr *errors.ParseError
	var derr *toml.DecodeError
	if errors.As(wrapped, &perr) && errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return wrapped
}
