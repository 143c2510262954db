// Package logship collects the TouchDesigner run log after a build.
//
// A [Shipper] receives the path of the log file written by the application
// together with the identity of the build. [S3] uploads it to an
// S3-compatible bucket; [Dir] copies it into a local directory. Shipping
// is best-effort: callers log a failure and carry on.
//
// Example usage:
//
//	shipper, err := logship.NewS3(logship.Config{
//	    Endpoint:  "minio.internal:9000",
//	    AccessKey: accessKey,
//	    SecretKey: secretKey,
//	    Bucket:    "td-build-logs",
//	})
//	if err != nil {
//	    return err
//	}
//	err = shipper.Ship(ctx, logship.Record{Path: "logs/td.log", BuildID: id})
package logship
