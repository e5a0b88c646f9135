// SPDX-License-Identifier: EPL-2.0

// Package stream moves a remote audio body into a decoder.
//
// A Downloader reads an HTTP response body and pushes it block by block
// into a bounded channel; a Reader on the other end of that channel turns
// the blocks back into an io.Reader for the decoder:
//
//	blocks := make(chan []byte, 128)
//	go dl.Fetch(ctx, url, blocks)
//	src, err := wav.Decoder{}.Decode(stream.NewReader(blocks, 8192))
//
// The channel capacity bounds how far the network may run ahead of the
// decoder.
package stream
