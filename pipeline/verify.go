package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/android"
)

// verify decodes the built .apk and checks that what got
// packaged agrees with the spec: package identifier, SDK
// levels and declared permissions.
func (p *Pipeline) verify(ctx context.Context, result *Result) error {
	opts := []android.APKDecoderOpt{}
	if p.APKTool != "" {
		opts = append(opts, android.WithAPKTool(p.APKTool))
	}

	decoder := android.NewAPKDecoder(result.Artifact, opts...)
	defer decoder.Close()

	errs := []error{}

	manifest, err := decoder.Manifest(ctx)
	if err != nil {
		return err
	}

	if pkg := manifest.Package(); pkg != p.Spec.PackageID() {
		errs = append(errs, fmt.Errorf("package %s, expected %s", pkg, p.Spec.PackageID()))
	}

	declared := manifest.Permissions()
	for _, permission := range p.Spec.Permissions {
		if !slices.Contains(declared, android.Permission(permission)) {
			errs = append(errs, fmt.Errorf("permission %s not declared", android.Permission(permission)))
		}
	}

	// SDK levels come from the manifest, with the decode
	// metadata filling in what the manifest omits. A failed
	// metadata read is a verification failure, not a pass.
	minSDK, targetSDK := manifest.MinSDKVersion(), manifest.TargetSDKVersion()
	if metadata, err := decoder.Metadata(ctx); err != nil {
		errs = append(errs, fmt.Errorf("decode metadata: %w", err))
	} else if metadata.SDKInfo != nil {
		if minSDK == 0 {
			minSDK = metadata.SDKInfo.MinSDKVersion
		}
		if targetSDK == 0 {
			targetSDK = metadata.SDKInfo.TargetSDKVersion
		}
	}

	if minSDK != p.Spec.MinAPI {
		errs = append(errs, fmt.Errorf("minSdkVersion %d, expected %d", minSDK, p.Spec.MinAPI))
	}

	if targetSDK != p.Spec.API {
		errs = append(errs, fmt.Errorf("targetSdkVersion %d, expected %d", targetSDK, p.Spec.API))
	}

	// Unsigned debug artifacts have no certificate to report.
	if fingerprints, err := decoder.SHA256CertFingerprints(ctx); err == nil {
		result.Fingerprints = fingerprints
	} else {
		hfget.LoggerFrom(ctx).V(1).Info("no certificate fingerprints", "cause", err.Error())
	}

	return errors.Join(errs...)
}
