/*
 * Copyright 2026 the Tiki2 Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package catalog holds the static endpoint data sets the pipeline probes.
// Pure data, no behavior; every function returns a fresh slice so callers
// can never mutate the catalogs.
package catalog

import "github.com/haniyekshm2003-stack/Tiki2/pkg/models"

// PingLocations are geographically diverse latency targets, probed by TCP
// connect to port 80.
func PingLocations() []models.Target {
	return []models.Target{
		// Europe
		{Kind: models.KindPing, Host: "speedtest.london.linode.com", Port: 80, Region: "Europe", Country: "UK", City: "London"},
		{Kind: models.KindPing, Host: "speedtest.frankfurt.linode.com", Port: 80, Region: "Europe", Country: "DE", City: "Frankfurt"},
		{Kind: models.KindPing, Host: "speedtest.amsterdam.linode.com", Port: 80, Region: "Europe", Country: "NL", City: "Amsterdam"},
		{Kind: models.KindPing, Host: "ping.online.net", Port: 80, Region: "Europe", Country: "FR", City: "Paris"},
		{Kind: models.KindPing, Host: "speedtest.mil01.softlayer.com", Port: 80, Region: "Europe", Country: "IT", City: "Milan"},
		// North America
		{Kind: models.KindPing, Host: "speedtest.newark.linode.com", Port: 80, Region: "North America", Country: "US", City: "Newark"},
		{Kind: models.KindPing, Host: "speedtest.dallas.linode.com", Port: 80, Region: "North America", Country: "US", City: "Dallas"},
		{Kind: models.KindPing, Host: "speedtest.fremont.linode.com", Port: 80, Region: "North America", Country: "US", City: "Fremont"},
		{Kind: models.KindPing, Host: "speedtest.toronto1.linode.com", Port: 80, Region: "North America", Country: "CA", City: "Toronto"},
		// Asia
		{Kind: models.KindPing, Host: "speedtest.tokyo2.linode.com", Port: 80, Region: "Asia", Country: "JP", City: "Tokyo"},
		{Kind: models.KindPing, Host: "speedtest.singapore.linode.com", Port: 80, Region: "Asia", Country: "SG", City: "Singapore"},
		{Kind: models.KindPing, Host: "speedtest.mumbai1.linode.com", Port: 80, Region: "Asia", Country: "IN", City: "Mumbai"},
		// Middle East
		{Kind: models.KindPing, Host: "speedtest.uaeexchange.com", Port: 80, Region: "Middle East", Country: "AE", City: "Dubai"},
		// Oceania
		{Kind: models.KindPing, Host: "speedtest.syd1.linode.com", Port: 80, Region: "Oceania", Country: "AU", City: "Sydney"},
		// South America
		{Kind: models.KindPing, Host: "speedtest.sao01.softlayer.com", Port: 80, Region: "South America", Country: "BR", City: "São Paulo"},
	}
}

// DNSResolvers are well-known public resolvers, probed with UDP A queries.
func DNSResolvers() []models.Target {
	return []models.Target{
		{Kind: models.KindDNS, Host: "8.8.8.8", Port: 53, Name: "Google DNS"},
		{Kind: models.KindDNS, Host: "1.1.1.1", Port: 53, Name: "Cloudflare"},
		{Kind: models.KindDNS, Host: "9.9.9.9", Port: 53, Name: "Quad9"},
		{Kind: models.KindDNS, Host: "208.67.222.222", Port: 53, Name: "OpenDNS"},
		{Kind: models.KindDNS, Host: "94.140.14.14", Port: 53, Name: "AdGuard DNS"},
		{Kind: models.KindDNS, Host: "8.26.56.26", Port: 53, Name: "Comodo DNS"},
		{Kind: models.KindDNS, Host: "185.228.168.9", Port: 53, Name: "CleanBrowsing"},
		{Kind: models.KindDNS, Host: "4.2.2.1", Port: 53, Name: "Level3 DNS"},
		{Kind: models.KindDNS, Host: "77.88.8.8", Port: 53, Name: "Yandex DNS"},
		{Kind: models.KindDNS, Host: "64.6.64.6", Port: 53, Name: "Verisign DNS"},
		{Kind: models.KindDNS, Host: "178.22.122.100", Port: 53, Name: "Shecan DNS"},
		{Kind: models.KindDNS, Host: "10.202.10.202", Port: 53, Name: "403 DNS"},
		{Kind: models.KindDNS, Host: "78.157.42.101", Port: 53, Name: "Electro DNS"},
	}
}

// CDNEdges are edge hosts of the major CDN networks. The probe times the
// TCP connect and the fetch of URL separately.
func CDNEdges() []models.Target {
	return []models.Target{
		{Kind: models.KindCDN, Host: "speed.cloudflare.com", Port: 443, Name: "Cloudflare", URL: "https://speed.cloudflare.com/__down?bytes=10000"},
		{Kind: models.KindCDN, Host: "www.gstatic.com", Port: 443, Name: "Google CDN", URL: "https://www.gstatic.com/generate_204"},
		{Kind: models.KindCDN, Host: "d1.awsstatic.com", Port: 443, Name: "Amazon CloudFront", URL: "https://d1.awsstatic.com/logos/aws-logo-lockups/poweredbyaws/PB_AWS_logo_RGB_REV_SQ.8c88ac215fe4e441dc42865dd6962ed4f444a90d.png"},
		{Kind: models.KindCDN, Host: "www.fastly.com", Port: 443, Name: "Fastly", URL: "https://www.fastly.com/"},
		{Kind: models.KindCDN, Host: "www.akamai.com", Port: 443, Name: "Akamai", URL: "https://www.akamai.com/"},
		{Kind: models.KindCDN, Host: "ajax.aspnetcdn.com", Port: 443, Name: "Microsoft Azure CDN", URL: "https://ajax.aspnetcdn.com/ajax/jquery/jquery-3.7.1.min.js"},
		{Kind: models.KindCDN, Host: "cdn.jsdelivr.net", Port: 443, Name: "jsDelivr", URL: "https://cdn.jsdelivr.net/npm/jquery@3.7.1/dist/jquery.min.js"},
		{Kind: models.KindCDN, Host: "cdnjs.cloudflare.com", Port: 443, Name: "cdnjs (Cloudflare)", URL: "https://cdnjs.cloudflare.com/ajax/libs/jquery/3.7.1/jquery.min.js"},
		{Kind: models.KindCDN, Host: "www.stackpath.com", Port: 443, Name: "StackPath", URL: "https://www.stackpath.com/"},
		{Kind: models.KindCDN, Host: "www.keycdn.com", Port: 443, Name: "KeyCDN", URL: "https://www.keycdn.com/"},
	}
}

// protocolHosts are the endpoints each protocol is exercised against.
var protocolHosts = []struct {
	name string
	host string
}{
	{"Google", "www.google.com"},
	{"Cloudflare", "cloudflare.com"},
	{"GitHub", "github.com"},
}

// ProtocolEndpoints expands every protocol under test across the protocol
// host set. Results are aggregated per protocol, not per host.
func ProtocolEndpoints() []models.Target {
	protos := []struct {
		proto string
		port  int
	}{
		{models.ProtoHTTP, 80},
		{models.ProtoHTTPS, 443},
		{models.ProtoTCP, 80},
		{models.ProtoUDP, 53},
		{models.ProtoTLS, 443},
		{models.ProtoWebSocket, 443},
	}

	targets := make([]models.Target, 0, len(protos)*len(protocolHosts))

	for _, p := range protos {
		for _, h := range protocolHosts {
			targets = append(targets, models.Target{
				Kind:     models.KindProtocol,
				Host:     h.host,
				Port:     p.port,
				Protocol: p.proto,
				Name:     h.name,
			})
		}
	}

	return targets
}

// portSweepTarget is the outbound reachability test destination.
const portSweepTarget = "8.8.8.8"

// CommonPorts are the ports swept for outbound reachability.
func CommonPorts() []models.Target {
	ports := []struct {
		port    int
		service string
	}{
		{80, "HTTP"},
		{443, "HTTPS"},
		{8080, "HTTP Alt"},
		{8443, "HTTPS Alt"},
		{53, "DNS"},
		{22, "SSH"},
		{21, "FTP"},
		{25, "SMTP"},
		{587, "SMTP TLS"},
		{993, "IMAP SSL"},
		{995, "POP3 SSL"},
		{3389, "RDP"},
		{5222, "XMPP"},
		{1194, "OpenVPN"},
		{1723, "PPTP"},
		{500, "IKE/IPSec"},
		{4500, "IPSec NAT-T"},
		{51820, "WireGuard"},
		{2083, "cPanel SSL"},
		{2096, "Webmail SSL"},
	}

	targets := make([]models.Target, 0, len(ports))

	for _, p := range ports {
		targets = append(targets, models.Target{
			Kind:    models.KindPort,
			Host:    portSweepTarget,
			Port:    p.port,
			Service: p.service,
		})
	}

	return targets
}

// ForCategory returns the catalog backing one recommendation category.
func ForCategory(c models.Category) []models.Target {
	switch c {
	case models.CategoryLocation:
		return PingLocations()
	case models.CategoryDNS:
		return DNSResolvers()
	case models.CategoryCDN:
		return CDNEdges()
	case models.CategoryProtocol:
		return ProtocolEndpoints()
	case models.CategoryPort:
		return CommonPorts()
	default:
		return nil
	}
}
