// Package message decodes mail provider payloads into EmailRecords.
//
// Headers are matched case-insensitively. The body is taken from, in order:
//
//  1. for a single-part payload, its inline body data as is
//  2. the first top-level text/plain part of a multipart payload
//  3. the payload's own inline body data
//  4. the first text/plain part nested deeper in the tree
//  5. the first text/html part, with markup removed
//
// Part data is URL-safe base64 encoded UTF-8. A body that cannot be decoded
// yields a diagnostic string in place of the content. Content is then
// whitespace-normalised and truncated to ContentLimit characters.
package message
