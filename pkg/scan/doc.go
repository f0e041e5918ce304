// Package scan builds albums from photo sources.
//
// # Overview
//
// A [Scanner] turns a source (a photo directory, an album manifest, or a
// manifest URL) into an [album.Album] with the intrinsic dimensions the
// layout engine needs. Two scanners are provided:
//
//   - [DirScanner] walks a directory tree, decoding the header of every
//     image file it finds.
//   - [ManifestScanner] reads an album.json manifest, probing any photo
//     whose dimensions the manifest omits.
//
// [Detect] picks the right scanner for a source automatically.
//
// # Dimension Probing
//
// Dimensions come from image headers, never full decodes: jpeg, png, gif,
// webp, bmp, and tiff are supported. Remote probes go through [Prober],
// which caches results (a photo URL's dimensions never change) and
// retries transient network failures.
//
// A manifest photo that cannot be probed keeps zero dimensions; the
// layout engine falls back to a square for it. A directory file that
// cannot be decoded is not a photo and is skipped.
//
// # Usage
//
//	scanner, err := scan.Detect("./photos", prober)
//	if err != nil {
//	    return err
//	}
//	a, err := scanner.Scan(ctx, "./photos", scan.Options{Recursive: true})
package scan
