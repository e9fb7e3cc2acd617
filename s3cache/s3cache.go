/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// DefaultPrefix is the object key prefix used when none is configured.
const DefaultPrefix = "s3cache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client used for every cache operation. It is
	// initialized by Init() from the default Config unless a caller has
	// already set it.
	Client *s3.Client

	bucketName string
	prefix     string

	// gzip compresses entries on Set and decompresses them on Get. Object
	// keys of compressed entries end in ".gz".
	gzip bool

	logger zerolog.Logger

	ctx context.Context
}

// Option customizes a Cache returned by New.
type Option func(*Cache)

// WithGzip stores entries gzip compressed.
func WithGzip() Option {
	return func(c *Cache) { c.gzip = true }
}

// WithPrefix stores entries under prefix instead of DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// WithLogger reports failed S3 operations to logger. Without it failures are
// silent, which is all httpcache needs since every failure is a cache miss.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New returns a Cache stored in the named bucket. Callers must invoke Init()
// on the returned Cache before use.
func New(ctx context.Context, bucketName string, opts ...Option) *Cache {
	c := &Cache{
		ctx:        ctx,
		bucketName: bucketName,
		prefix:     DefaultPrefix,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Init loads the default AWS configuration (environment, then shared config
// and credentials files) and verifies the bucket can be read and listed.
func (c *Cache) Init() error {
	if c.Client == nil {
		var err error
		c.Config, err = config.LoadDefaultConfig(c.ctx)
		if err != nil {
			return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
		}
		c.Client = s3.NewFromConfig(c.Config)
	}

	if _, err := c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}
	if _, err := c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		Prefix:  aws.String(c.prefix),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logFailure("get", objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logFailure("get", objKey, err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logFailure("get", objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		body, err := compress(data)
		if err != nil {
			c.logFailure("set", objKey, err)
			return
		}
		input.Body = body
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logFailure("set", objKey, err)
	}
}

// Delete removes the entry stored under key.
func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	if _, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	}); err != nil {
		c.logFailure("delete", objKey, err)
	}
}

func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := path.Join(c.prefix, hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logFailure(op string, objKey string, err error) {
	c.logger.Warn().
		Err(err).
		Str("op", op).
		Str("bucket", c.bucketName).
		Str("key", objKey).
		Msg("s3cache operation failed")
}

func compress(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}
