// Package remotestore fetches Fluent resources from S3-compatible object
// storage, for deployments that keep translations in a bucket instead of
// (or in addition to) the local filesystem.
package remotestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config describes how to reach the bucket holding .ftl resources, laid
// out as "<prefix>/<locale>/<name>.ftl".
type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// Store reads Fluent resources out of an S3-compatible bucket.
type Store struct {
	client *s3.Client
	cfg    Config
}

// New builds a Store from cfg. Credentials are static, matching how the
// rest of this module avoids ambient provider-chain discovery.
func New(cfg Config) *Store {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &Store{client: s3.New(s3.Options{}, opts...), cfg: cfg}
}

// Locales lists the locale "directories" immediately under the configured
// prefix, derived from common key prefixes the same way a filesystem
// walk would derive them from subdirectory names.
func (store *Store) Locales(ctx context.Context) ([]string, error) {
	prefix := store.keyPrefix("")

	out, err := store.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(store.cfg.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, fmt.Errorf("list locales under %q: %w", prefix, err)
	}

	locales := make([]string, 0, len(out.CommonPrefixes))
	for _, common := range out.CommonPrefixes {
		locale := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(common.Prefix), prefix), "/")
		if locale != "" {
			locales = append(locales, locale)
		}
	}
	return locales, nil
}

// Resources lists the .ftl object keys for a given locale.
func (store *Store) Resources(ctx context.Context, locale string) ([]string, error) {
	prefix := store.keyPrefix(locale)

	paginator := s3.NewListObjectsV2Paginator(store.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(store.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list resources under %q: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, ".ftl") {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// Get downloads a single resource's raw FTL text.
func (store *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(store.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("get object %q: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("read object %q: %w", key, err)
	}
	return string(body), nil
}

func (store *Store) keyPrefix(locale string) string {
	prefix := strings.Trim(store.cfg.Prefix, "/")
	if locale != "" {
		prefix = strings.Trim(prefix+"/"+locale, "/")
	}
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
