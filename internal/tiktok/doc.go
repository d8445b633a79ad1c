// Package tiktok integrates with the TikTok Content Posting API v2
// direct-post flow and builds post captions.
//
// Docs: https://developers.tiktok.com/doc/content-posting-api-reference-direct-post
package tiktok
