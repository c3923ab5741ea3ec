package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/internal/uploader"
)

func main() {
	_ = godotenv.Load()

	defaultServer := os.Getenv("VOXVERIFY_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	server := flag.String("server", defaultServer, "Analysis bridge base URL")
	mime := flag.String("mime", "", "Override the detected MIME type")
	copyPayload := flag.Bool("copy", false, "Copy the base64 payload to the clipboard")
	encodeOnly := flag.Bool("encode-only", false, "Print the base64 payload and exit")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] sample.mp3\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	os.Exit(run(flag.Arg(0), *server, *mime, *copyPayload, *encodeOnly, logger))
}

func run(path, server, mime string, copyPayload, encodeOnly bool, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sample, err := uploader.LoadSample(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if mime != "" {
		sample.MIMEType = mime
	}

	client := uploader.NewBridgeClient(server, &http.Client{})
	u := uploader.NewUploader(client, logger)

	if !u.SelectFile(sample) {
		fmt.Fprintln(os.Stderr, u.State().Err)
		return 1
	}
	if err := u.WaitEncoded(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := u.State().Err; err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if copyPayload {
		if _, err := u.CopyEncodedPayload(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied base64 payload to clipboard")
		}
	}

	if encodeOnly {
		fmt.Println(u.State().Payload)
		return 0
	}

	fmt.Fprintln(os.Stderr, "Extracting phonation patterns...")
	result, err := u.Analyze(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Analysis failed:", err)
		return 1
	}

	state := u.State()
	if err := uploader.Render(os.Stdout, result, state.Sample, time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
