// Package iputil 获取本机 IP 与 HTTP 请求的客户端 IP.
package iputil

import (
	"net"
	"net/http"
	"strings"
)

// 代理常用的客户端 IP 头.
const (
	XClientIP         = "X-Client-IP"
	XRealIP           = "X-Real-IP"
	XForwardedFor     = "X-Forwarded-For"
	ProxyClientIP     = "Proxy-Client-IP"
	WLProxyClientIP   = "WL-Proxy-Client-IP"
	HTTPClientIP      = "HTTP_CLIENT_IP"
	HTTPXForwardedFor = "HTTP_X_FORWARDED_FOR"

	unknownIP = "unknown"
)

var proxyHeaders = []string{XClientIP, XRealIP, XForwardedFor, ProxyClientIP, WLProxyClientIP, HTTPClientIP, HTTPXForwardedFor}

// GetLocalIP 返回第一个非回环 IPv4 地址，找不到时返回 127.0.0.1.
func GetLocalIP() string {
	if ip := LocalIPv4(); ip != nil {
		return ip.String()
	}
	return "127.0.0.1"
}

// LocalIPv4 返回第一个非回环 IPv4 地址，找不到时返回 nil.
func LocalIPv4() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4
			}
		}
	}
	return nil
}

// RemoteIP 依次检查代理头，取第一个非 unknown 的地址，最后回退到 RemoteAddr.
// 逗号分隔的列表取第一个非 unknown 的元素.
func RemoteIP(req *http.Request) string {
	for _, header := range proxyHeaders {
		if ip := firstKnown(req.Header.Get(header)); ip != "" {
			return normalize(ip)
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}
	return normalize(host)
}

func firstKnown(value string) string {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !strings.EqualFold(part, unknownIP) {
			return part
		}
	}
	return ""
}

func normalize(ip string) string {
	if ip == "::1" {
		return "127.0.0.1"
	}
	return ip
}
