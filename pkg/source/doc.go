// Package source loads HTML documents from files, HTTP(S) URLs and S3.
//
//	loader := source.New(source.WithS3Client(s3.NewFromConfig(cfg)))
//	doc, err := loader.Load(ctx, "s3://site-assets/pages/menu.html")
//
// Bare paths and file:// URIs are read from disk. Every source is capped
// at MaxSize bytes.
package source
