// Package config defines the format-agnostic model of a report's static
// structure: its group hierarchy, the crosstab groups embedded in it and the
// row source it reads. The structural pass and the axis builder walk this
// model; they never see the file format it was loaded from.
//
// Concrete loaders, such as the HCL one, live in separate packages and
// implement the Loader interface.
package config
