package render

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/mmr-tortoise/pagedeck/internal/model"
)

// DefaultDockerImage is the ImageMagick image used by the containerized
// renderer unless the user overrides it.
const DefaultDockerImage = "dpokidov/imagemagick:latest"

// DockerRenderer runs ImageMagick inside a container as a fallback for
// hosts with no renderer installed but a running Docker daemon. The
// input PDF's directory is bind-mounted read-only at /in and the output
// directory read-write at /out.
type DockerRenderer struct{}

// Method identifies this backend.
func (r *DockerRenderer) Method() model.ConversionMethod {
	return model.MethodDocker
}

// Available checks that a Docker daemon is reachable.
func (r *DockerRenderer) Available(ctx context.Context) error {
	cli, err := NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	return cli.Ping(ctx)
}

// Render pulls the ImageMagick image if needed and runs a one-shot
// container executing the same convert invocation the host renderer
// would use. The container is always removed, even on failure.
func (r *DockerRenderer) Render(ctx context.Context, pdfPath, outDir string, opts model.ConvertOptions) ([]string, error) {
	cli, err := NewClient()
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	if err := cli.Ping(ctx); err != nil {
		return nil, err
	}

	imageRef := opts.DockerImage
	if imageRef == "" {
		imageRef = DefaultDockerImage
	}
	if err := ensureImage(ctx, cli, imageRef); err != nil {
		return nil, err
	}

	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path: %w", err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	// The container sees the PDF at /in/<name>; the range suffix applies
	// to the in-container path.
	cmd := []string{
		"-density", strconv.Itoa(opts.Resolution),
		magickInput("/in/"+filepath.Base(absPDF), opts),
		"/out/page_%04d.png",
	}

	created, err := cli.Inner().ContainerCreate(ctx,
		&container.Config{
			Image:      imageRef,
			Entrypoint: strslice.StrSlice{"convert"},
			Cmd:        strslice.StrSlice(cmd),
			WorkingDir: "/out",
		},
		&container.HostConfig{
			Binds: []string{
				filepath.Dir(absPDF) + ":/in:ro",
				absOut + ":/out",
			},
		},
		nil, nil, "")
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			"failed to create renderer container",
			err,
		)
	}
	// Force removal cleans up regardless of how the run ended.
	defer cli.Inner().ContainerRemove(context.WithoutCancel(ctx), created.ID,
		container.RemoveOptions{Force: true})

	if err := cli.Inner().ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			"failed to start renderer container",
			err,
		)
	}

	statusCh, errCh := cli.Inner().ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			"failed waiting for renderer container",
			err,
		)
	case status := <-statusCh:
		if status.StatusCode != 0 {
			return nil, model.NewCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("containerized convert exited with status %d: %s",
					status.StatusCode, containerLogs(ctx, cli, created.ID)),
			)
		}
	}

	return collectImages(outDir)
}

// ensureImage pulls the image, falling back to a local copy when the
// pull fails (e.g. offline but previously pulled).
func ensureImage(ctx context.Context, cli *Client, imageRef string) error {
	reader, err := cli.Inner().ImagePull(ctx, imageRef, image.PullOptions{})
	if err == nil {
		// The pull only completes once the progress stream is drained.
		_, copyErr := io.Copy(io.Discard, reader)
		reader.Close()
		if copyErr == nil {
			return nil
		}
	}

	if _, inspectErr := cli.Inner().ImageInspect(ctx, imageRef); inspectErr == nil {
		return nil
	}

	return model.WrapCLIError(
		model.ExitGeneralError,
		fmt.Sprintf("failed to pull image %q and no local copy exists", imageRef),
		err,
	)
}

// containerLogs fetches the combined output of a finished container for
// error reporting. Failures here degrade to an empty string — the exit
// status error is already being built.
func containerLogs(ctx context.Context, cli *Client, containerID string) string {
	reader, err := cli.Inner().ContainerLogs(context.WithoutCancel(ctx), containerID,
		container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return ""
	}
	defer reader.Close()

	// Docker multiplexes stdout/stderr on one stream; stdcopy demuxes.
	var buf strings.Builder
	_, _ = stdcopy.StdCopy(&buf, &buf, reader)
	return strings.TrimSpace(buf.String())
}
