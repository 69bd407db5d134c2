package loader

import "io"

// gltfLoaderBackendImpl is the loaderBackend for glTF/GLB files. It parses the document
// with a fresh parser per call and hands it to the mesh extractor.
type gltfLoaderBackendImpl struct {
	extractor gltfMeshExtractor
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend(names map[string]string) loaderBackend {
	return &gltfLoaderBackendImpl{
		extractor: newGLTFMeshExtractor(names),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) ([]Primitive, error) {
	p := newGLTFParser()
	if err := p.Parse(path); err != nil {
		return nil, err
	}
	return b.extractor.Extract(p.Document())
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isGLB bool) ([]Primitive, error) {
	p := newGLTFParser()
	if err := p.ParseReader(r, isGLB); err != nil {
		return nil, err
	}
	return b.extractor.Extract(p.Document())
}
