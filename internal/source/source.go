// Package source resolves the inputs named on a command line: standard
// input, local files, ** glob patterns and s3://bucket/key objects.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the input name that refers to standard input.
const Stdin = "-"

const s3Scheme = "s3://"

var ErrTooLarge = errors.New("source: input exceeds size limit")

// Expand turns patterns into a list of input names. Glob patterns (with
// "**" support) are replaced by the regular files they match, in lexical
// order; "-", s3:// URLs and plain paths are kept as given. A glob that
// matches nothing is an error.
func Expand(patterns []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, p := range patterns {
		if p == Stdin || IsS3(p) || !containsGlobMeta(p) {
			add(p)
			continue
		}
		hits, err := doublestar.FilepathGlob(filepath.FromSlash(p))
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", p, err)
		}
		var files []string
		for _, h := range hits {
			if isRegularFile(h) {
				files = append(files, h)
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("expand %q: no matching files", p)
		}
		sort.Strings(files)
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

func containsGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func isRegularFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}

func IsS3(name string) bool { return strings.HasPrefix(name, s3Scheme) }

// ParseS3 splits s3://bucket/key.
func ParseS3(name string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(name, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("source: %q is not an s3:// URL", name)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("source: %q needs both a bucket and a key", name)
	}
	return bucket, key, nil
}

// ObjectGetter is the part of *s3.Client the opener needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener opens input names. The zero value reads files and standard input
// and creates an S3 client from the default AWS configuration the first
// time an s3:// name is opened.
type Opener struct {
	Stdin io.Reader    // defaults to os.Stdin
	S3    ObjectGetter // defaults to s3.NewFromConfig(config.LoadDefaultConfig)

	once  sync.Once
	s3err error
}

func (o *Opener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	switch {
	case name == Stdin:
		r := o.Stdin
		if r == nil {
			r = os.Stdin
		}
		return io.NopCloser(r), nil
	case IsS3(name):
		return o.openS3(ctx, name)
	}
	return os.Open(name)
}

func (o *Opener) openS3(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3(name)
	if err != nil {
		return nil, err
	}
	o.once.Do(func() {
		if o.S3 != nil {
			return
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			o.s3err = fmt.Errorf("source: load aws config: %w", err)
			return
		}
		o.S3 = s3.NewFromConfig(cfg)
	})
	if o.s3err != nil {
		return nil, o.s3err
	}
	out, err := o.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", name, err)
	}
	return out.Body, nil
}

// ReadAll opens name and reads it whole. A positive limit caps the size.
func ReadAll(ctx context.Context, o *Opener, name string, limit int64) ([]byte, error) {
	rc, err := o.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	if limit <= 0 {
		return io.ReadAll(rc)
	}
	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%s: %w (%d bytes)", name, ErrTooLarge, limit)
	}
	return b, nil
}
