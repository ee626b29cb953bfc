package palette

import "crypto/md5"

// fromDigest derives a full palette from the MD5 digest of content. Colours
// are built from 3 byte RGB groups taken from the digest at stride 3,
// wrapping back to the start of the digest when a group runs short. The same
// bytes always produce the same palette.
func fromDigest(content []byte) Palette {
	sum := md5.Sum(content)
	digest := sum[:]

	colours := make(Palette, 0, Size)
	for i := 0; i < Size; i++ {
		start := (i * 3) % len(digest)
		group := digest[start:]
		if len(group) >= 3 {
			group = group[:3]
		} else {
			group = append(append([]byte{}, group...), digest...)[:3]
		}
		colours = append(colours, rgbToHex(group[0], group[1], group[2]))
	}
	return colours
}
