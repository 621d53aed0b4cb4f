package imageFs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"carousel-frame/pkg/sharedTypes"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"golang.org/x/sync/errgroup"
)

// ErrMissingCredentials is returned when the AWS environment is incomplete
var ErrMissingCredentials = errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")

// Downloader fetches images from S3 into a local cache directory
type Downloader struct {
	Client      s3iface.S3API
	Dir         string
	Concurrency int
}

// NewS3Client builds an S3 client from the AWS_* environment variables
func NewS3Client() (s3iface.S3API, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region == "" || accessKey == "" || secretKey == "" {
		return nil, ErrMissingCredentials
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return s3.New(sess), nil
}

// ParseS3Ref splits an s3://bucket/key reference. ok is false for anything else.
func ParseS3Ref(ref string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(ref, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", false
	}
	return bucket, key, true
}

// ListCollection returns the image keys under the collection's folder in key order
func (d *Downloader) ListCollection(ctx context.Context, collection sharedTypes.Collection) ([]string, error) {
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(collection.Bucket),
		Prefix: aws.String(collection.Folder),
	}

	var keys []string
	err := d.Client.ListObjectsV2PagesWithContext(ctx, listInput, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			if obj.Key == nil || strings.HasSuffix(*obj.Key, "/") {
				continue // skip empty keys or "directories"
			}
			if !IsImage(*obj.Key) {
				continue
			}
			keys = append(keys, *obj.Key)
		}
		return !lastPage
	})
	if err != nil {
		return nil, fmt.Errorf("list s3://%s/%s: %w", collection.Bucket, collection.Folder, err)
	}

	sort.Strings(keys)
	return keys, nil
}

// DownloadCollection downloads every image of the collection and returns the
// local paths in key order. Objects that fail to download are logged and
// skipped; an empty result is an error.
func (d *Downloader) DownloadCollection(ctx context.Context, collection sharedTypes.Collection) ([]string, error) {
	log.Printf("DownloadCollection called | collection=%s | bucket=%s | folder=%s", collection.Title, collection.Bucket, collection.Folder)

	keys, err := d.ListCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	refs := make([]string, len(keys))
	for i, key := range keys {
		refs[i] = "s3://" + collection.Bucket + "/" + key
	}

	paths, err := d.DownloadRefs(ctx, refs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("collection %s: %w", collection.Title, ErrNoImages)
	}

	log.Printf("DownloadCollection completed | collection=%s | listed=%d | downloaded=%d", collection.Title, len(keys), len(paths))
	return paths, nil
}

// DownloadRefs downloads s3:// references concurrently. The returned paths
// keep the order of refs; failed downloads are dropped. Only context
// cancellation aborts the whole batch.
func (d *Downloader) DownloadRefs(ctx context.Context, refs []string) ([]string, error) {
	results, err := d.fetchAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(results))
	for _, p := range results {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// fetchAll returns one local path per ref, empty where the download failed
func (d *Downloader) fetchAll(ctx context.Context, refs []string) ([]string, error) {
	if err := os.MkdirAll(d.Dir, os.ModePerm); err != nil {
		return nil, err
	}

	results := make([]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.Concurrency, 1))

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := d.download(gctx, ref)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Printf("failed to download %s: %v", ref, err)
				return nil // skip this object but keep going
			}
			results[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Downloader) download(ctx context.Context, ref string) (string, error) {
	bucket, key, ok := ParseS3Ref(ref)
	if !ok {
		return "", fmt.Errorf("not an s3 object reference: %q", ref)
	}

	localPath := filepath.Join(d.Dir, bucket, filepath.FromSlash(key))
	if !strings.HasPrefix(localPath, filepath.Join(d.Dir, bucket)+string(filepath.Separator)) {
		return "", fmt.Errorf("object key escapes cache directory: %q", key)
	}

	result, err := d.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", err
	}
	defer result.Body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), os.ModePerm); err != nil {
		return "", err
	}

	outFile, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", localPath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, result.Body); err != nil {
		return "", fmt.Errorf("write file %s: %w", localPath, err)
	}
	return localPath, nil
}
