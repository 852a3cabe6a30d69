package ctx

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync/atomic"
)

// Proxies lists the peers allowed to report the client address through
// X-Forwarded-For and X-Real-Ip. The zero value trusts nobody.
type Proxies []netip.Prefix

// ParseProxies reads a comma-separated list of IPs and CIDRs. Valid
// entries are returned even when others fail to parse.
func ParseProxies(list string) (Proxies, error) {
	var (
		out  Proxies
		errs []error
	)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				errs = append(errs, fmt.Errorf("trusted proxy %q: %w", item, err))
				continue
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("trusted proxy %q: %w", item, err))
			continue
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, errors.Join(errs...)
}

func (p Proxies) trusts(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, unless the peer is a trusted proxy:
// then it is the right-most X-Forwarded-For hop that is not itself
// trusted, or X-Real-Ip.
func (p Proxies) ClientIP(r *http.Request) string {
	peer := remoteIP(r.RemoteAddr)
	if !p.trusts(peer) {
		return peer
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !p.trusts(hop) || i == 0 {
				return hop
			}
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
		return real
	}
	return peer
}

func remoteIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

var trusted atomic.Pointer[Proxies]

// SetTrustedProxies replaces the proxies ClientIP honours.
func SetTrustedProxies(p Proxies) {
	trusted.Store(&p)
}

// ClientIP resolves the client address with the proxies set by
// SetTrustedProxies. Forwarding headers are ignored until then.
func ClientIP(r *http.Request) string {
	var p Proxies
	if cur := trusted.Load(); cur != nil {
		p = *cur
	}
	return p.ClientIP(r)
}
