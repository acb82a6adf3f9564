package toolchain

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

const DefaultCC = "cc"

// WriteSource writes generated C text to name, creating parent directories.
func WriteSource(ctx context.Context, name string, text []byte) error {
	err := os.MkdirAll(filepath.Dir(name), 0o755)
	if err != nil {
		return errors.Wrap(err, "create dir")
	}

	err = os.WriteFile(name, text, 0o644)
	if err != nil {
		return errors.Wrap(err, "write")
	}

	tlog.SpanFromContext(ctx).Printw("wrote source", "name", name, "size", len(text))

	return nil
}

// Build compiles and links the C file src into the executable out.
func Build(ctx context.Context, cc, src, out string) (err error) {
	if cc == "" {
		cc = DefaultCC
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "cc", "cc", cc, "src", src, "out", out)
	defer tr.Finish("err", &err)

	err = os.MkdirAll(filepath.Dir(out), 0o755)
	if err != nil {
		return errors.Wrap(err, "create dir")
	}

	cmd := exec.CommandContext(ctx, cc, src, "-o", out)

	msg, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrap(err, "%v: %s", cc, bytes.TrimSpace(msg))
	}

	return nil
}

// Run executes bin and returns its exit code and combined output.
// A non-zero exit code is not an error.
func Run(ctx context.Context, bin string) (code int, out []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "run", "bin", bin)
	defer tr.Finish("code", &code, "err", &err)

	if !filepath.IsAbs(bin) && filepath.Base(bin) == bin {
		bin = "." + string(filepath.Separator) + bin
	}

	cmd := exec.CommandContext(ctx, bin)

	out, err = cmd.CombinedOutput()

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode(), out, nil
	}

	if err != nil {
		return -1, out, errors.Wrap(err, "run")
	}

	return 0, out, nil
}
