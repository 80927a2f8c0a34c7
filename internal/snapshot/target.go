// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package snapshot persists and restores the store's kv space and schedule,
// grounded on the teacher's pkg/archive/parquet target abstraction and
// pkg/metricstore/checkpoint.go periodic-checkpoint pattern.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Target abstracts where snapshot bytes live, mirroring ParquetTarget in the
// teacher's pkg/archive/parquet package.
type Target interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
	Exists(name string) (bool, error)
}

// FileTarget writes snapshots to the local filesystem. name is always an
// absolute or relative path; FileTarget does not namespace it under a
// directory the way the teacher's checkpoint target does, since SAVE/RESTORE
// take a full path directly.
type FileTarget struct{}

func (FileTarget) WriteFile(name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("snapshot: create directory %q: %w", dir, err)
		}
	}
	return os.WriteFile(name, data, 0o640)
}

func (FileTarget) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (FileTarget) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// S3TargetConfig configures an S3Target, mirroring the teacher's
// S3TargetConfig in pkg/archive/parquet/target.go.
type S3TargetConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Region       string
	UsePathStyle bool
}

// S3Target writes/reads snapshots to/from an S3-compatible object store,
// used when the SAVE/RESTORE/MERGE path argument is an s3://bucket/key URL.
type S3Target struct {
	client *s3.Client
}

func NewS3Target(cfg S3TargetConfig) (*S3Target, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load AWS config: %w", err)
	}

	opts := func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}

	return &S3Target{client: s3.NewFromConfig(awsCfg, opts)}, nil
}

// ParseS3URL splits an "s3://bucket/key" path into bucket and key.
func ParseS3URL(path string) (bucket, key string, ok bool) {
	u, err := url.Parse(path)
	if err != nil || u.Scheme != "s3" {
		return "", "", false
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), true
}

func (t *S3Target) WriteFile(key string, data []byte) error {
	bucket, objKey, ok := ParseS3URL(key)
	if !ok {
		return fmt.Errorf("snapshot: not an s3:// path: %q", key)
	}
	_, err := t.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("snapshot: s3 put %q: %w", key, err)
	}
	return nil
}

func (t *S3Target) ReadFile(key string) ([]byte, error) {
	bucket, objKey, ok := ParseS3URL(key)
	if !ok {
		return nil, fmt.Errorf("snapshot: not an s3:// path: %q", key)
	}
	out, err := t.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: s3 get %q: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (t *S3Target) Exists(key string) (bool, error) {
	bucket, objKey, ok := ParseS3URL(key)
	if !ok {
		return false, fmt.Errorf("snapshot: not an s3:// path: %q", key)
	}
	_, err := t.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var respErr *smithyhttp.ResponseError
		if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
			return false, nil
		}
		return false, fmt.Errorf("snapshot: s3 head %q: %w", key, err)
	}
	return true, nil
}

// TargetFor picks FileTarget or S3Target based on path's scheme.
func TargetFor(path string, s3cfg S3TargetConfig) (Target, error) {
	if _, _, ok := ParseS3URL(path); ok {
		return NewS3Target(s3cfg)
	}
	return FileTarget{}, nil
}

// DynamicTarget resolves FileTarget or S3Target per call via TargetFor,
// letting SAVE/RESTORE/MERGE accept either a local path or an s3://
// URL without the caller fixing the target ahead of time. This is the
// Target a Manager is usually constructed with; S3Config supplies the
// credentials/region an s3:// path needs.
type DynamicTarget struct {
	S3Config S3TargetConfig
}

func (t DynamicTarget) resolve(name string) (Target, error) {
	return TargetFor(name, t.S3Config)
}

func (t DynamicTarget) WriteFile(name string, data []byte) error {
	target, err := t.resolve(name)
	if err != nil {
		return err
	}
	return target.WriteFile(name, data)
}

func (t DynamicTarget) ReadFile(name string) ([]byte, error) {
	target, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	return target.ReadFile(name)
}

func (t DynamicTarget) Exists(name string) (bool, error) {
	target, err := t.resolve(name)
	if err != nil {
		return false, err
	}
	return target.Exists(name)
}
