package usecase

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/x-xyz/klvmarket/domain/asset"
)

const (
	DefaultIpfsGateway = "ipfs.io"
	arweaveGateway     = "https://arweave.net/"
	ipfsScheme         = "ipfs://"
	arScheme           = "ar://"
)

// imageKeys are checked in this order before falling back to any hint.
var imageKeys = []string{"image", "img", "picture", "thumbnail", "media", "photo"}

var imageMimes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/bmp",
	"image/tiff",
	"image/x-icon",
	"image/avif",
	"image/heic",
	"image/apng",
}

// deniedHosts never serve images even when the url looks like one.
var deniedHosts = []string{
	"t.me",
	"telegram.me",
	"telegram.org",
	"twitter.com",
	"x.com",
	"discord.gg",
	"discord.com",
	"instagram.com",
	"facebook.com",
	"youtube.com",
	"youtu.be",
	"tiktok.com",
	"medium.com",
	"linkedin.com",
	"reddit.com",
}

var unreliableGatewayPrefixes = []string{
	"https://gateway.pinata.cloud/ipfs/",
	"https://cloudflare-ipfs.com/ipfs/",
	"https://ipfs.foundation.app/ipfs/",
}

var dedicatedPinataRegex = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)

var imageExts = func() map[string]bool {
	exts := map[string]bool{".jpeg": true}
	for _, m := range imageMimes {
		if mt := mimetype.Lookup(m); mt != nil && mt.Extension() != "" {
			exts[mt.Extension()] = true
		}
	}
	return exts
}()

type ImageResolverCfg struct {
	// Gateway is the preferred ipfs gateway host
	Gateway string
}

type imageResolver struct {
	gatewayPrefix string
}

func NewImageResolver(cfg *ImageResolverCfg) asset.ImageResolver {
	gw := strings.TrimSpace(cfg.Gateway)
	gw = strings.TrimPrefix(strings.TrimPrefix(gw, "https://"), "http://")
	gw = strings.TrimRight(gw, "/")
	if gw == "" {
		gw = DefaultIpfsGateway
	}
	return &imageResolver{gatewayPrefix: "https://" + gw + "/ipfs/"}
}

// Resolve prefers the logo, then the well known image keys, then any hint that
// looks like an image.
func (r *imageResolver) Resolve(logo string, hints []asset.Uri) (string, bool) {
	if logo = strings.TrimSpace(logo); logo != "" {
		return r.rewrite(logo), true
	}

	for _, key := range imageKeys {
		for _, h := range hints {
			if strings.EqualFold(strings.TrimSpace(h.Key), key) && isImageLike(h.Value) {
				return r.rewrite(h.Value), true
			}
		}
	}

	for _, h := range hints {
		if isImageLike(h.Value) {
			return r.rewrite(h.Value), true
		}
	}
	return "", false
}

func (r *imageResolver) rewrite(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case hasPrefixFold(raw, ipfsScheme):
		cid := raw[len(ipfsScheme):]
		cid = strings.TrimPrefix(cid, "ipfs/")
		return r.gatewayPrefix + cid
	case hasPrefixFold(raw, arScheme):
		return arweaveGateway + raw[len(arScheme):]
	}

	for _, p := range unreliableGatewayPrefixes {
		if strings.HasPrefix(raw, p) {
			return r.gatewayPrefix + raw[len(p):]
		}
	}
	if loc := dedicatedPinataRegex.FindStringIndex(raw); loc != nil {
		return r.gatewayPrefix + raw[loc[1]:]
	}
	return raw
}

func isImageLike(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || isDenied(v) {
		return false
	}
	if imageExts[extOf(v)] {
		return true
	}
	contentAddressed := strings.Contains(v, "ipfs") || strings.Contains(v, "arweave") || strings.HasPrefix(v, arScheme)
	return contentAddressed && !strings.Contains(v, "metadata")
}

func isDenied(v string) bool {
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	for _, d := range deniedHosts {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func extOf(v string) string {
	if u, err := url.Parse(v); err == nil {
		v = u.Path
	}
	return path.Ext(v)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
