package cpu

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [kernel_h, kernel_w, in_channels, out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Strides, dilation, and explicit (possibly asymmetric) zero padding come
// from params. Output dimensions:
//
//	out_h = (H + padTop + padBottom - (K_h-1)*dil_h - 1) / stride_h + 1
//	out_w = (W + padLeft + padRight - (K_w-1)*dil_w - 1) / stride_w + 1
//
// Algorithm: Im2col
//  1. Transform input patches into columns (im2col)
//  2. Treat the kernel as a [K_h*K_w*C_in, C_out] matrix
//  3. Matrix multiplication
//  4. Rearrange output to [N, C_out, H_out, W_out]
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, params tensor.Conv2DParams) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [K_h,K_w,C_in,C_out], got %dD", len(kernelShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: input dtype %s != kernel dtype %s", input.DType(), kernel.DType()))
	}

	N := inputShape[0]
	CIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	KH := kernelShape[0]
	KW := kernelShape[1]
	CInK := kernelShape[2]
	COut := kernelShape[3]

	if CIn != CInK {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", CIn, CInK))
	}
	if params.StrideH <= 0 || params.StrideW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid strides (%d, %d)", params.StrideH, params.StrideW))
	}
	if params.DilationH <= 0 || params.DilationW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid dilation (%d, %d)", params.DilationH, params.DilationW))
	}
	if params.PadTop < 0 || params.PadBottom < 0 || params.PadLeft < 0 || params.PadRight < 0 {
		panic("conv2d: negative padding")
	}

	effKH := (KH-1)*params.DilationH + 1
	effKW := (KW-1)*params.DilationW + 1
	HOut := (H+params.PadTop+params.PadBottom-effKH)/params.StrideH + 1
	WOut := (W+params.PadLeft+params.PadRight-effKW)/params.StrideW + 1

	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check kernel/stride/padding)", HOut, WOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, COut, HOut, WOut}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	dims := convDims{
		n: N, cIn: CIn, h: H, w: W,
		cOut: COut, kh: KH, kw: KW,
		hOut: HOut, wOut: WOut,
		params: params,
	}

	switch input.DType() {
	case tensor.Float32:
		conv2dFloat32(output, input, kernel, dims)
	case tensor.Float64:
		conv2dFloat64(output, input, kernel, dims)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

type convDims struct {
	n, cIn, h, w         int
	cOut, kh, kw         int
	hOut, wOut           int
	params               tensor.Conv2DParams
}

func conv2dFloat32(output, input, kernel *tensor.RawTensor, d convDims) {
	inputData := input.AsFloat32()
	kernelData := kernel.AsFloat32()
	outputData := output.AsFloat32()

	// Im2col: [N * H_out * W_out, K_h * K_w * C_in], row order matches
	// the HWIO kernel flattening so the matmul is a plain dot product.
	colWidth := d.kh * d.kw * d.cIn
	colHeight := d.n * d.hOut * d.wOut
	colBuf := make([]float32, colHeight*colWidth)
	im2colFloat32(colBuf, inputData, d)

	// out[o, pos] = sum_k kernel[k, o] * col[pos, k]
	// kernel flat index for (kh, kw, c, o): ((kh*KW + kw)*C_in + c)*C_out + o = k*C_out + o
	for o := 0; o < d.cOut; o++ {
		for pos := 0; pos < colHeight; pos++ {
			sum := float32(0.0)
			for k := 0; k < colWidth; k++ {
				sum += kernelData[k*d.cOut+o] * colBuf[pos*colWidth+k]
			}
			outputData[o*colHeight+pos] = sum
		}
	}

	// Rearrange from [C_out, N*H_out*W_out] to [N, C_out, H_out, W_out].
	tempBuf := make([]float32, len(outputData))
	copy(tempBuf, outputData)
	faceSize := d.hOut * d.wOut
	for n := 0; n < d.n; n++ {
		for c := 0; c < d.cOut; c++ {
			srcIdx := c*colHeight + n*faceSize
			dstIdx := n*d.cOut*faceSize + c*faceSize
			copy(outputData[dstIdx:dstIdx+faceSize], tempBuf[srcIdx:srcIdx+faceSize])
		}
	}
}

func im2colFloat32(colBuf, inputData []float32, d convDims) {
	colWidth := d.kh * d.kw * d.cIn
	colIdx := 0

	for n := 0; n < d.n; n++ {
		for outH := 0; outH < d.hOut; outH++ {
			for outW := 0; outW < d.wOut; outW++ {
				hStart := outH*d.params.StrideH - d.params.PadTop
				wStart := outW*d.params.StrideW - d.params.PadLeft
				bufIdx := colIdx * colWidth

				for kh := 0; kh < d.kh; kh++ {
					for kw := 0; kw < d.kw; kw++ {
						h := hStart + kh*d.params.DilationH
						w := wStart + kw*d.params.DilationW

						for c := 0; c < d.cIn; c++ {
							if h >= 0 && h < d.h && w >= 0 && w < d.w {
								inputIdx := n*d.cIn*d.h*d.w + c*d.h*d.w + h*d.w + w
								colBuf[bufIdx] = inputData[inputIdx]
							} else {
								// Out of bounds (zero padding)
								colBuf[bufIdx] = 0.0
							}
							bufIdx++
						}
					}
				}

				colIdx++
			}
		}
	}
}

func conv2dFloat64(output, input, kernel *tensor.RawTensor, d convDims) {
	inputData := input.AsFloat64()
	kernelData := kernel.AsFloat64()
	outputData := output.AsFloat64()

	colWidth := d.kh * d.kw * d.cIn
	colHeight := d.n * d.hOut * d.wOut
	colBuf := make([]float64, colHeight*colWidth)
	im2colFloat64(colBuf, inputData, d)

	for o := 0; o < d.cOut; o++ {
		for pos := 0; pos < colHeight; pos++ {
			sum := float64(0.0)
			for k := 0; k < colWidth; k++ {
				sum += kernelData[k*d.cOut+o] * colBuf[pos*colWidth+k]
			}
			outputData[o*colHeight+pos] = sum
		}
	}

	tempBuf := make([]float64, len(outputData))
	copy(tempBuf, outputData)
	faceSize := d.hOut * d.wOut
	for n := 0; n < d.n; n++ {
		for c := 0; c < d.cOut; c++ {
			srcIdx := c*colHeight + n*faceSize
			dstIdx := n*d.cOut*faceSize + c*faceSize
			copy(outputData[dstIdx:dstIdx+faceSize], tempBuf[srcIdx:srcIdx+faceSize])
		}
	}
}

func im2colFloat64(colBuf, inputData []float64, d convDims) {
	colWidth := d.kh * d.kw * d.cIn
	colIdx := 0

	for n := 0; n < d.n; n++ {
		for outH := 0; outH < d.hOut; outH++ {
			for outW := 0; outW < d.wOut; outW++ {
				hStart := outH*d.params.StrideH - d.params.PadTop
				wStart := outW*d.params.StrideW - d.params.PadLeft
				bufIdx := colIdx * colWidth

				for kh := 0; kh < d.kh; kh++ {
					for kw := 0; kw < d.kw; kw++ {
						h := hStart + kh*d.params.DilationH
						w := wStart + kw*d.params.DilationW

						for c := 0; c < d.cIn; c++ {
							if h >= 0 && h < d.h && w >= 0 && w < d.w {
								inputIdx := n*d.cIn*d.h*d.w + c*d.h*d.w + h*d.w + w
								colBuf[bufIdx] = inputData[inputIdx]
							} else {
								colBuf[bufIdx] = 0.0
							}
							bufIdx++
						}
					}
				}

				colIdx++
			}
		}
	}
}
