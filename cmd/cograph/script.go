package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/fine-structures/cograph/pycograph"
	_ "github.com/go-python/gpython/stdlib"
)

const startupFlag = "startup"

func newScriptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script [file.py]",
		Short: "Run a python script with the cograph module available, or start a REPL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd, startupFlag)

			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runScript(pathname, viper.GetString(startupFlag), nil)
		},
	}
	cmd.Flags().String(startupFlag, "", "script run in the REPL module before the prompt appears")
	return cmd
}

// runScript runs pathname, or starts a REPL when pathname is empty.
// If stdout is non-nil, python's sys.stdout writes to it.
func runScript(pathname, startup string, stdout *os.File) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	if stdout != nil {
		redirectStdout(ctx, stdout)
	}

	var err error
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)
		if startup != "" {
			_, err = runFile(ctx, startup, replCtx.Module)
		}
		if err == nil {
			cli.RunREPL(replCtx)
		}
	} else {
		startTime := time.Now()
		klog.V(1).Infof("executing '%s'", pathname)

		_, err = runFile(ctx, pathname, nil)
		if err == nil {
			klog.V(1).Infof("execution complete: %v", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}

// runFile runs the script at pathname, which may be absolute or relative to the working directory.
// gpython resolves a run path against sys.path, so the script's directory is passed as CurDir instead.
func runFile(ctx py.Context, pathname string, inModule interface{}) (*py.Module, error) {
	absPath, err := filepath.Abs(pathname)
	if err != nil {
		return nil, err
	}
	opts := py.CompileOpts{
		CurDir: filepath.Dir(absPath),
	}
	return py.RunFile(ctx, filepath.Base(absPath), opts, inModule)
}

func redirectStdout(ctx py.Context, out *os.File) {
	sys := ctx.Store().MustGetModule("sys")
	sys.Globals["stdout"] = &py.File{
		File:     out,
		FileMode: py.FileWrite,
	}
}

