package codec

import "github.com/coregx/needlehunt/transform"

// Defaults returns the full set of transformers in their canonical order:
// the non-reversible hashes first, then the reversible encodings from
// least to most structurally specific, ending with the two whole-buffer,
// non-substring compressors.
//
// needlehunt.New uses this list as the transformer set for AddValue and
// FindValueIn when it is given no transformers of its own.
func Defaults() []transform.Transformer {
	return []transform.Transformer{
		MD5,
		SHA1,
		SHA256,
		SHA512,
		NewBase64(DefaultBase64Options()),
		NewHex(DefaultHexOptions()),
		NewURI(),
		NewJSONString(),
		NewHTMLEntities(),
		NewMultipart(),
		NewLZString(DefaultLZStringOptions()),
		NewCompress(),
	}
}
