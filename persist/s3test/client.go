// Package s3test provides an S3 client for tests: an in-process fake by
// default, or a real endpoint named by VERSIONED_TEST_S3_ENDPOINT.
package s3test

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"net/http/httptest"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

const noRegion = "not-using-AWS"

// Client returns a client, an empty bucket, and a func that empties the
// bucket and releases the client's resources. A bucket named by
// VERSIONED_TEST_S3_BUCKET is emptied but kept; otherwise a bucket is created
// and later deleted.
func Client() (*s3.S3, string, func()) {
	var client *s3.S3
	release := func() {}
	if endpoint := os.Getenv("VERSIONED_TEST_S3_ENDPOINT"); endpoint != "" {
		client = endpointClient(endpoint)
	} else {
		client, release = fakeClient()
	}

	bucketName, created := prepareBucket(client)
	return client, bucketName, func() {
		_ = emptyBucket(client, bucketName)
		if created {
			_, _ = client.DeleteBucket(&s3.DeleteBucketInput{Bucket: &bucketName})
		}
		release()
	}
}

// endpointClient talks to a real S3-compatible service. With AWS_REGION
// set, the SDK picks the AWS endpoint itself.
func endpointClient(endpoint string) *s3.S3 {
	config := aws.Config{
		Credentials: credentials.NewStaticCredentials(
			mustGetenv("AWS_ACCESS_KEY_ID"),
			mustGetenv("AWS_SECRET_ACCESS_KEY"),
			os.Getenv("AWS_SESSION_TOKEN"),
		),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(noRegion),
		S3ForcePathStyle: aws.Bool(true),
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.Region = aws.String(region)
		config.Endpoint = nil
	}
	sess, err := session.NewSession(&config)
	if err != nil {
		panic(err)
	}
	return s3.New(sess)
}

func fakeClient() (*s3.S3, func()) {
	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewServer(faker.Server())
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials("TEST-ACCESSKEYID", "TEST-SECRETACCESSKEY", ""),
		Endpoint:         aws.String(ts.URL),
		Region:           aws.String("ca-west-1"),
		DisableSSL:       aws.Bool(true),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		ts.Close()
		panic(err)
	}
	return s3.New(sess), ts.Close
}

func prepareBucket(client *s3.S3) (string, bool) {
	if name := os.Getenv("VERSIONED_TEST_S3_BUCKET"); name != "" {
		if err := emptyBucket(client, name); err != nil {
			panic(err)
		}
		return name, false
	}
	i, err := rand.Int(rand.Reader, big.NewInt(math.MaxUint32))
	if err != nil {
		panic(err)
	}
	name := fmt.Sprintf("bucket-%s", i)
	if _, err := client.CreateBucket(&s3.CreateBucketInput{Bucket: &name}); err != nil {
		panic(err)
	}
	return name, true
}

func mustGetenv(key string) string {
	res := os.Getenv(key)
	if res == "" {
		panic(fmt.Sprintf("environment '%s' unset", key))
	}
	return res
}

func emptyBucket(client *s3.S3, bucket string) error {
	params := &s3.ListObjectsInput{Bucket: &bucket}
	for {
		objects, err := client.ListObjects(params)
		if err != nil {
			return err
		}
		if len(objects.Contents) == 0 {
			return nil
		}
		ids := make([]*s3.ObjectIdentifier, 0, len(objects.Contents))
		for _, object := range objects.Contents {
			ids = append(ids, &s3.ObjectIdentifier{Key: object.Key})
		}
		_, err = client.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: &bucket,
			Delete: &s3.Delete{Objects: ids},
		})
		if err != nil {
			return err
		}
		if !aws.BoolValue(objects.IsTruncated) {
			return nil
		}
		params.Marker = ids[len(ids)-1].Key
	}
}
