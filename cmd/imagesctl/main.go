// Command imagesctl загружает файлы в сервис хранения и скачивает их обратно.
//
//	imagesctl [-addr URL] [-progress] upload FILE
//	imagesctl [-addr URL] [-progress] download [-o FILE] ID
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/images_lite/internal/logger"
	"github.com/sir_venger/images_lite/pkg/imagesclient"
	"go.uber.org/zap"
)

const defaultAddr = "http://127.0.0.1:8080"

func main() {
	addr := flag.String("addr", envOr("IMAGES_ADDR", defaultAddr), "service base URL")
	progress := flag.Bool("progress", false, "render transfer progress on stderr")
	timeout := flag.Duration("timeout", 0, "overall operation timeout (0 = none)")
	flag.Usage = usage
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Encoding: logger.EncodingConsole})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	var opts []imagesclient.Option
	if *progress {
		opts = append(opts, imagesclient.WithProgress(os.Stderr))
	}
	cl := imagesclient.New(*addr, opts...)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "upload":
		err = upload(ctx, cl, args[1:])
	case "download":
		err = download(ctx, cl, args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(args[0]+" failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func upload(ctx context.Context, cl *imagesclient.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("upload: expected exactly one FILE argument")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	start := time.Now()
	fileID, err := cl.Upload(ctx, f, info.Size())
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, fileID)
	fmt.Fprintf(os.Stderr, "uploaded %d bytes in %s\n", info.Size(), time.Since(start).Round(time.Millisecond))
	return nil
}

func download(ctx context.Context, cl *imagesclient.Client, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	out := fs.String("o", "", "write to FILE instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("download: expected exactly one ID argument")
	}

	rc, err := cl.Download(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	defer rc.Close()

	var dst io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	if _, err = io.Copy(dst, rc); err != nil {
		return err
	}

	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage:\n  %[1]s [flags] upload FILE\n  %[1]s [flags] download [-o FILE] ID\n\nflags:\n", os.Args[0])
	flag.PrintDefaults()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
